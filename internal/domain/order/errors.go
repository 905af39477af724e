package order

import "github.com/BruksfildServices01/homely-bites/internal/httperr"

var (
	ErrOrderNotFound      = httperr.NotFound("order_not_found", "Order not found")
	ErrNotCancellable     = httperr.Conflict("order_not_cancellable", "Only placed orders can be cancelled")
	ErrInvalidTransition  = httperr.Conflict("invalid_status_transition", "Order cannot move to that status")
	ErrStatusNotAllowed   = httperr.Validation("status_not_allowed", "Invalid status")
	ErrStatusChanged      = httperr.Conflict("order_status_changed", "Order was updated by someone else, refresh and retry")
	ErrAlreadyAssigned    = httperr.Conflict("order_already_assigned", "Order cannot be assigned or already assigned")
	ErrNotAssignedToYou   = httperr.NotFound("order_not_assigned", "Order not found or not assigned to you")
	ErrCourierNotFound    = httperr.NotFound("courier_not_found", "Delivery person not found")
	ErrEmptyCart          = httperr.Validation("empty_cart", "Missing required fields")
	ErrInvalidQuantity    = httperr.Validation("invalid_quantity", "Quantity must be between 1 and 100")
	ErrChefUnavailable    = httperr.Validation("chef_unavailable", "Chef is not accepting orders")
	ErrAddressNotFound    = httperr.NotFound("address_not_found", "Address not found")
	ErrOutsideServiceArea = httperr.Validation("outside_service_area", "Chef does not deliver to this pincode")
	ErrItemUnavailable    = httperr.Validation("item_unavailable", "One or more items are not available from this chef")
)
