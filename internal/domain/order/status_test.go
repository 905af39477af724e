package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rank orders statuses along the happy path; Cancelled sits outside it.
var rank = map[Status]int{
	StatusPlaced:     0,
	StatusAccepted:   1,
	StatusPreparing:  2,
	StatusReady:      3,
	StatusPickedUp:   4,
	StatusOnDelivery: 5,
	StatusDelivered:  6,
}

func TestCanTransition_NeverRegresses(t *testing.T) {
	for _, from := range All() {
		for _, to := range All() {
			err := CanTransition(from, to)
			if err != nil {
				continue
			}
			if to == StatusCancelled {
				assert.Equal(t, StatusPlaced, from, "only Placed may be cancelled")
				continue
			}
			assert.Greater(t, rank[to], rank[from], "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, to := range All() {
		assert.ErrorIs(t, CanTransition(StatusDelivered, to), ErrInvalidTransition)
		assert.ErrorIs(t, CanTransition(StatusCancelled, to), ErrInvalidTransition)
	}
}

func TestActiveNames(t *testing.T) {
	assert.Equal(t, []string{
		"Placed", "Accepted", "Preparing", "Ready", "Picked Up", "On Delivery",
	}, ActiveNames())
	assert.False(t, Status("Lost").Active())
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPlaced))
	for _, s := range All() {
		if s == StatusPlaced {
			continue
		}
		assert.ErrorIs(t, CanCancel(s), ErrNotCancellable, s)
	}
}

func TestCanChefSet(t *testing.T) {
	assert.NoError(t, CanChefSet(StatusPlaced, StatusAccepted))
	assert.NoError(t, CanChefSet(StatusAccepted, StatusPreparing))
	assert.NoError(t, CanChefSet(StatusPreparing, StatusReady))
	assert.NoError(t, CanChefSet(StatusReady, StatusPickedUp))

	assert.ErrorIs(t, CanChefSet(StatusReady, StatusDelivered), ErrStatusNotAllowed)
	assert.ErrorIs(t, CanChefSet(StatusPlaced, StatusCancelled), ErrStatusNotAllowed)
	assert.ErrorIs(t, CanChefSet(StatusReady, StatusPreparing), ErrInvalidTransition)
	assert.ErrorIs(t, CanChefSet(StatusOnDelivery, StatusPickedUp), ErrInvalidTransition)
}

func TestCanCourierSet(t *testing.T) {
	assert.NoError(t, CanCourierSet(StatusOnDelivery, StatusDelivered))
	assert.NoError(t, CanCourierSet(StatusOnDelivery, StatusOnDelivery))
	assert.NoError(t, CanCourierSet(StatusPickedUp, StatusOnDelivery))

	assert.ErrorIs(t, CanCourierSet(StatusOnDelivery, StatusCancelled), ErrStatusNotAllowed)
	assert.ErrorIs(t, CanCourierSet(StatusDelivered, StatusOnDelivery), ErrInvalidTransition)
	assert.ErrorIs(t, CanCourierSet(StatusPreparing, StatusDelivered), ErrInvalidTransition)
}

func TestParse(t *testing.T) {
	cases := map[string]Status{
		"Placed":      StatusPlaced,
		"on delivery": StatusOnDelivery,
		" Picked Up ": StatusPickedUp,
		"preparing":   StatusPreparing,
		"completed":   StatusDelivered,
		"cancelled":   StatusCancelled,
	}
	for in, want := range cases {
		got, ok := Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := Parse("teleported")
	assert.False(t, ok)
}

func TestClaimable(t *testing.T) {
	assert.True(t, IsClaimable(StatusReady))
	assert.True(t, IsClaimable(StatusPickedUp))
	assert.False(t, IsClaimable(StatusPreparing))
	assert.False(t, IsClaimable(StatusOnDelivery))
}
