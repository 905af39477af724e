package order

import (
	"context"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// ClaimOrder lets a courier take an unassigned ready order. Only the
// conditional update decides who wins; the read before it just picks the
// expected status. The courier row must still exist.
type ClaimOrder struct {
	deps
}

func NewClaimOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *ClaimOrder {
	return &ClaimOrder{deps: newDeps(repo, audit, pub)}
}

func (uc *ClaimOrder) Execute(
	ctx context.Context,
	driverID uint,
	orderID uint,
) (*models.Order, error) {

	if _, err := uc.repo.GetCourier(ctx, driverID); err != nil {
		return nil, notFoundAs(err, domain.ErrCourierNotFound)
	}

	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOrderNotFound)
	}

	from := domain.Status(o.Status)
	if o.DeliveryPersonID != nil || !domain.IsClaimable(from) {
		return nil, domain.ErrAlreadyAssigned
	}

	actor := domain.Actor{Role: domain.ActorCourier, ID: driverID}
	now := uc.now()

	ok, err := uc.repo.Claim(ctx, domain.Transition{
		OrderID: o.ID,
		Actor:   actor,
		From:    from,
		To:      domain.StatusOnDelivery,
		At:      now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyAssigned
	}

	o.DeliveryPersonID = &driverID
	o.Status = string(domain.StatusOnDelivery)
	o.AssignedAt = &now
	o.UpdatedAt = now

	uc.record(ctx, events.OrderClaimed, o, actor, from, now)

	return o, nil
}
