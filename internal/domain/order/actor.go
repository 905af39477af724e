package order

import "time"

type ActorRole string

const (
	ActorCustomer ActorRole = "customer"
	ActorChef     ActorRole = "chef"
	ActorCourier  ActorRole = "delivery"
	ActorAdmin    ActorRole = "admin"
)

type Actor struct {
	Role ActorRole
	ID   uint
}

// Transition is a compare-and-set status change: it only applies while the
// order is still in From and still owned by Actor.
type Transition struct {
	OrderID uint
	Actor   Actor
	From    Status
	To      Status
	At      time.Time
}
