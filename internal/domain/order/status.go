package order

import "strings"

// ===============================
// Order Status
// ===============================

type Status string

// MaxLineQuantity caps one item's quantity in an order, after merging.
const MaxLineQuantity = 100

const (
	StatusPlaced     Status = "Placed"
	StatusAccepted   Status = "Accepted"
	StatusPreparing  Status = "Preparing"
	StatusReady      Status = "Ready"
	StatusPickedUp   Status = "Picked Up"
	StatusOnDelivery Status = "On Delivery"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var transitions = map[Status][]Status{
	StatusPlaced:     {StatusAccepted, StatusPreparing, StatusReady, StatusCancelled},
	StatusAccepted:   {StatusPreparing, StatusReady},
	StatusPreparing:  {StatusReady},
	StatusReady:      {StatusPickedUp, StatusOnDelivery},
	StatusPickedUp:   {StatusOnDelivery},
	StatusOnDelivery: {StatusDelivered},
}

var chefTargets = []Status{StatusAccepted, StatusPreparing, StatusReady, StatusPickedUp}

var courierTargets = []Status{StatusOnDelivery, StatusDelivered}

var claimable = []Status{StatusReady, StatusPickedUp}

// legacy maps the order_status vocabulary used by older chef routes.
var legacy = map[string]Status{
	"accepted":  StatusAccepted,
	"preparing": StatusPreparing,
	"ready":     StatusReady,
	"completed": StatusDelivered,
	"cancelled": StatusCancelled,
}

func All() []Status {
	return []Status{
		StatusPlaced, StatusAccepted, StatusPreparing, StatusReady,
		StatusPickedUp, StatusOnDelivery, StatusDelivered, StatusCancelled,
	}
}

func (s Status) Valid() bool {
	return contains(All(), s)
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Active reports whether the order is still moving through the kitchen or the road.
func (s Status) Active() bool {
	return s.Valid() && !s.Terminal()
}

// ActiveNames lists the stored values of every active status.
func ActiveNames() []string {
	var out []string
	for _, s := range All() {
		if s.Active() {
			out = append(out, string(s))
		}
	}
	return out
}

// Parse accepts the canonical names case-insensitively and the legacy lower-case ones.
func Parse(raw string) (Status, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range All() {
		if strings.EqualFold(string(s), raw) {
			return s, true
		}
	}
	s, ok := legacy[strings.ToLower(raw)]
	return s, ok
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if !contains(transitions[from], to) {
		return ErrInvalidTransition
	}
	return nil
}

// CanCancel only lets a customer back out before the kitchen picks the order up.
func CanCancel(current Status) error {
	if current != StatusPlaced {
		return ErrNotCancellable
	}
	return nil
}

func CanChefSet(from, to Status) error {
	if !contains(chefTargets, to) {
		return ErrStatusNotAllowed
	}
	return CanTransition(from, to)
}

func CanCourierSet(from, to Status) error {
	if !contains(courierTargets, to) {
		return ErrStatusNotAllowed
	}
	if from == to {
		return nil
	}
	return CanTransition(from, to)
}

func Claimable() []Status {
	return append([]Status(nil), claimable...)
}

func IsClaimable(s Status) bool {
	return contains(claimable, s)
}

func InitialStatus() Status {
	return StatusPlaced
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
