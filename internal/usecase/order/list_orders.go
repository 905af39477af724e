package order

import (
	"context"

	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/dto"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.OrderListDTO, int64, error) {

	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repo.ListOrders(ctx, filter)
}

// Available lists the claimable pool.
func (uc *ListOrders) Available(ctx context.Context) ([]dto.OrderListDTO, error) {
	return uc.repo.ListClaimable(ctx)
}
