package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
}

func TestBoundaries(t *testing.T) {
	loc := Location("Asia/Kolkata")
	// Thursday
	now := time.Date(2026, time.October, 15, 18, 45, 0, 0, loc)

	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, loc), StartOfDay(now))
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, loc), StartOfWeek(now))
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, loc), StartOfMonth(now))

	sunday := time.Date(2026, time.October, 18, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, loc), StartOfWeek(sunday))
}
