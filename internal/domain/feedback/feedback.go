package feedback

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating     = httperr.Validation("invalid_rating", "Rating must be between 1 and 5")
	ErrOrderNotFound     = httperr.NotFound("order_not_found", "Order not found")
	ErrOrderNotDelivered = httperr.Conflict("order_not_delivered", "Feedback can only be given for delivered orders")
	ErrAlreadySubmitted  = httperr.Conflict("feedback_exists", "Feedback already submitted for this order")
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

type Repository interface {
	// Create stores fb for a delivered order of fb.CustomerID and refreshes
	// the chef's average rating in the same transaction.
	Create(
		ctx context.Context,
		fb *models.Feedback,
	) error
}
