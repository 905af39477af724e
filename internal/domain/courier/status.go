package courier

import "github.com/BruksfildServices01/homely-bites/internal/httperr"

// Status is self-reported by the courier and not derived from their order load.
type Status string

const (
	StatusAvailable  Status = "Available"
	StatusOnDelivery Status = "On Delivery"
	StatusOffline    Status = "Offline"
)

var ErrInvalidStatus = httperr.Validation("invalid_courier_status", "Invalid status")

func Parse(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusAvailable, StatusOnDelivery, StatusOffline:
		return s, nil
	}
	return "", ErrInvalidStatus
}

func InitialStatus() Status {
	return StatusOffline
}
