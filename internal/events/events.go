// Package events publishes order lifecycle events after they are committed.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const (
	OrderPlaced        = "placed"
	OrderCancelled     = "cancelled"
	OrderStatusChanged = "status_changed"
	OrderClaimed       = "claimed"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	ChefID     uint      `json:"chef_id"`
	DriverID   *uint     `json:"driver_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty"`
	Status     string    `json:"status"`
	GrandTotal float64   `json:"grand_total"`
	ActorRole  string    `json:"actor_role"`
	ActorID    uint      `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e OrderEvent) RoutingKey() string {
	return "order." + e.Type
}

func (e OrderEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher never fails the caller: delivery problems are logged.
type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent)
}

type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []OrderEvent
}

func (r *Recorder) Publish(_ context.Context, ev OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Type)
	}
	return out
}
