package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// AdvanceOrder moves a chef's order through preparation.
type AdvanceOrder struct {
	deps
}

func NewAdvanceOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *AdvanceOrder {
	return &AdvanceOrder{deps: newDeps(repo, audit, pub)}
}

func (uc *AdvanceOrder) Execute(
	ctx context.Context,
	chefID uint,
	orderID uint,
	status string,
) (*models.Order, error) {

	to, ok := domain.Parse(status)
	if !ok {
		return nil, domain.ErrStatusNotAllowed
	}

	actor := domain.Actor{Role: domain.ActorChef, ID: chefID}

	o, err := uc.repo.GetOrderFor(ctx, orderID, actor)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOrderNotFound)
	}

	from := domain.Status(o.Status)
	if err := domain.CanChefSet(from, to); err != nil {
		return nil, err
	}

	now := uc.now()
	applied, err := uc.repo.Transition(ctx, domain.Transition{
		OrderID: o.ID,
		Actor:   actor,
		From:    from,
		To:      to,
		At:      now,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrStatusChanged
	}

	o.Status = string(to)
	o.UpdatedAt = now

	uc.record(ctx, events.OrderStatusChanged, o, actor, from, now)

	return o, nil
}
