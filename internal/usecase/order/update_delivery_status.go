package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

type UpdateDeliveryStatus struct {
	deps
}

func NewUpdateDeliveryStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *UpdateDeliveryStatus {
	return &UpdateDeliveryStatus{deps: newDeps(repo, audit, pub)}
}

func (uc *UpdateDeliveryStatus) Execute(
	ctx context.Context,
	driverID uint,
	orderID uint,
	status string,
) (*models.Order, error) {

	to, ok := domain.Parse(status)
	if !ok {
		return nil, domain.ErrStatusNotAllowed
	}

	actor := domain.Actor{Role: domain.ActorCourier, ID: driverID}

	o, err := uc.repo.GetOrderFor(ctx, orderID, actor)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrNotAssignedToYou)
	}

	from := domain.Status(o.Status)
	if err := domain.CanCourierSet(from, to); err != nil {
		return nil, err
	}
	if from == to {
		return o, nil
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
	if to == domain.StatusDelivered {
		o.DeliveredAt = &now
	}

	uc.record(ctx, events.OrderStatusChanged, o, actor, from, now)

	return o, nil
}
