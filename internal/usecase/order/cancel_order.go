package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type CancelOrder struct {
	deps
}

func NewCancelOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *CancelOrder {
	return &CancelOrder{deps: newDeps(repo, audit, pub)}
}

func (uc *CancelOrder) Execute(
	ctx context.Context,
	customerID uint,
	orderID uint,
) (*models.Order, error) {

	actor := domain.Actor{Role: domain.ActorCustomer, ID: customerID}

	o, err := uc.repo.GetOrderFor(ctx, orderID, actor)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOrderNotFound)
	}

	from := domain.Status(o.Status)
	if err := domain.CanCancel(from); err != nil {
		return nil, err
	}

	now := uc.now()
	ok, err := uc.repo.Transition(ctx, domain.Transition{
		OrderID: o.ID,
		Actor:   actor,
		From:    from,
		To:      domain.StatusCancelled,
		At:      now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// The kitchen moved it on between our read and the update.
		return nil, domain.ErrNotCancellable
	}

	o.Status = string(domain.StatusCancelled)
	o.CancelledAt = &now
	o.UpdatedAt = now

	uc.record(ctx, events.OrderCancelled, o, actor, from, now)

	return o, nil
}
