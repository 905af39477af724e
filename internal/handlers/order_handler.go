package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	"github.com/BruksfildServices01/homely-bites/internal/models"
	ucOrder "github.com/BruksfildServices01/homely-bites/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	repo           domain.Repository
	placeOrder     *ucOrder.PlaceOrder
	cancelOrder    *ucOrder.CancelOrder
	advanceOrder   *ucOrder.AdvanceOrder
	claimOrder     *ucOrder.ClaimOrder
	updateDelivery *ucOrder.UpdateDeliveryStatus
	listOrders     *ucOrder.ListOrders
}

func NewOrderHandler(
	repo domain.Repository,
	placeOrder *ucOrder.PlaceOrder,
	cancelOrder *ucOrder.CancelOrder,
	advanceOrder *ucOrder.AdvanceOrder,
	claimOrder *ucOrder.ClaimOrder,
	updateDelivery *ucOrder.UpdateDeliveryStatus,
	listOrders *ucOrder.ListOrders,
) *OrderHandler {
	return &OrderHandler{
		repo:           repo,
		placeOrder:     placeOrder,
		cancelOrder:    cancelOrder,
		advanceOrder:   advanceOrder,
		claimOrder:     claimOrder,
		updateDelivery: updateDelivery,
		listOrders:     listOrders,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CartItemRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

type PlaceOrderRequest struct {
	ChefID              uint              `json:"chef_id" binding:"required"`
	DeliveryAddressID   uint              `json:"delivery_address_id" binding:"required"`
	CartItems           []CartItemRequest `json:"cartItems"`
	SpecialInstructions string            `json:"special_instructions"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CourierOrderRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Status  string `json:"status"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, domain.ErrEmptyCart)
		return
	}

	lines := make([]ucOrder.CartLine, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		lines = append(lines, ucOrder.CartLine{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	o, err := h.placeOrder.Execute(c.Request.Context(), ucOrder.PlaceOrderInput{
		CustomerID:          middleware.SubjectID(c),
		ChefID:              req.ChefID,
		DeliveryAddressID:   req.DeliveryAddressID,
		Lines:               lines,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, o)
}

func (h *OrderHandler) CustomerOrders(c *gin.Context) {
	id := middleware.SubjectID(c)
	h.list(c, domain.ListFilter{CustomerID: &id})
}

func (h *OrderHandler) CustomerOrder(c *gin.Context) {
	h.detail(c, domain.Actor{Role: domain.ActorCustomer, ID: middleware.SubjectID(c)})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	o, err := h.cancelOrder.Execute(c.Request.Context(), middleware.SubjectID(c), orderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

// ======================================================
// CHEF
// ======================================================

func (h *OrderHandler) ChefOrders(c *gin.Context) {
	id := middleware.SubjectID(c)
	h.list(c, domain.ListFilter{ChefID: &id})
}

func (h *OrderHandler) ChefOrder(c *gin.Context) {
	h.detail(c, domain.Actor{Role: domain.ActorChef, ID: middleware.SubjectID(c)})
}

func (h *OrderHandler) ChefUpdateStatus(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.advanceOrder.Execute(c.Request.Context(), middleware.SubjectID(c), orderID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

// ======================================================
// DELIVERY PERSONNEL
// ======================================================

func (h *OrderHandler) CourierOrders(c *gin.Context) {
	id := middleware.SubjectID(c)
	h.list(c, domain.ListFilter{DeliveryPersonID: &id})
}

func (h *OrderHandler) AvailableOrders(c *gin.Context) {
	orders, err := h.listOrders.Available(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, orders)
}

func (h *OrderHandler) Accept(c *gin.Context) {
	var req CourierOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.claimOrder.Execute(c.Request.Context(), middleware.SubjectID(c), req.OrderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	var req CourierOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == "" {
		httperr.Write(c, errInvalidRequest)
		return
	}

	o, err := h.updateDelivery.Execute(c.Request.Context(), middleware.SubjectID(c), req.OrderID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

// ======================================================
// ADMIN
// ======================================================

func (h *OrderHandler) AllOrders(c *gin.Context) {
	h.list(c, domain.ListFilter{})
}

// ======================================================
// HELPERS
// ======================================================

// list applies the optional status, limit and offset query params.
func (h *OrderHandler) list(c *gin.Context, filter domain.ListFilter) {
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s, ok := domain.Parse(raw)
		if !ok {
			httperr.Write(c, domain.ErrStatusNotAllowed)
			return
		}
		filter.Status = &s
	}
	filter.Limit = queryInt(c, "limit")
	filter.Offset = queryInt(c, "offset")

	orders, total, err := h.listOrders.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if orders == nil {
		orders = []dto.OrderListDTO{}
	}
	httpresp.OK(c, gin.H{
		"orders": orders,
		"total":  total,
	})
}

func (h *OrderHandler) detail(c *gin.Context, actor domain.Actor) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}

	o, err := h.repo.GetOrderFor(c.Request.Context(), orderID, actor)
	if err != nil {
		httperr.Respond(c, notFound(err, domain.ErrOrderNotFound))
		return
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	httpresp.OK(c, o)
}
