package order

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	domain "github.com/BruksfildServices01/homely-bites/internal/domain/order"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

// deps is shared by every order use case.
type deps struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
	now    func() time.Time
}

func newDeps(repo domain.Repository, ad *audit.Dispatcher, pub events.Publisher) deps {
	if pub == nil {
		pub = events.Nop{}
	}
	return deps{
		repo:   repo,
		audit:  ad,
		events: pub,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// notFoundAs swaps a missing-row error for a domain error.
func notFoundAs(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (d deps) record(
	ctx context.Context,
	kind string,
	o *models.Order,
	actor domain.Actor,
	from domain.Status,
	at time.Time,
) {
	d.audit.Dispatch(audit.Event{
		ActorRole: string(actor.Role),
		ActorID:   audit.ID(actor.ID),
		Action:    "order_" + kind,
		Entity:    "order",
		EntityID:  audit.ID(o.ID),
		Metadata: map[string]string{
			"from": string(from),
			"to":   o.Status,
		},
	})

	d.events.Publish(ctx, events.OrderEvent{
		Type:       kind,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ChefID:     o.ChefID,
		DriverID:   o.DeliveryPersonID,
		FromStatus: string(from),
		Status:     o.Status,
		GrandTotal: o.GrandTotal,
		ActorRole:  string(actor.Role),
		ActorID:    actor.ID,
		OccurredAt: at,
	})
}
