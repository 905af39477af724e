package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/dto"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type ListFilter struct {
	CustomerID       *uint
	ChefID           *uint
	DeliveryPersonID *uint
	Status           *Status
	Limit            int
	Offset           int
}

type Repository interface {
	// -------- Catalog --------
	GetActiveChef(
		ctx context.Context,
		chefID uint,
	) (*models.HomeChef, error)

	GetOwnedAddress(
		ctx context.Context,
		owner models.OwnerRef,
		addressID uint,
	) (*models.Address, error)

	GetServiceArea(
		ctx context.Context,
		chefID uint,
		pincode string,
	) (*models.ServiceArea, error)

	ListChefItems(
		ctx context.Context,
		chefID uint,
		itemIDs []uint,
	) ([]models.MenuItem, error)

	GetCourier(
		ctx context.Context,
		driverID uint,
	) (*models.DeliveryPerson, error)

	// -------- Order (create / read) --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
		actor Actor,
	) error

	GetOrder(
		ctx context.Context,
		orderID uint,
	) (*models.Order, error)

	GetOrderFor(
		ctx context.Context,
		orderID uint,
		actor Actor,
	) (*models.Order, error)

	ListOrders(
		ctx context.Context,
		filter ListFilter,
	) ([]dto.OrderListDTO, int64, error)

	ListClaimable(
		ctx context.Context,
	) ([]dto.OrderListDTO, error)

	// -------- Order (state change) --------
	Transition(
		ctx context.Context,
		t Transition,
	) (bool, error)

	Claim(
		ctx context.Context,
		t Transition,
	) (bool, error)
}
