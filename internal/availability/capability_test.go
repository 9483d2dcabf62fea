package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapability_NumberRules(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s := Spot{Number: n, Name: "Spot"}
		assert.True(t, AllowsLongStay(s), n)
		assert.False(t, IsDayOnly(s), n)
		assert.Equal(t, CapabilityLongStay, CapabilityOf(s))
	}
	for _, n := range []int{7, 10, 12} {
		s := Spot{Number: n, Name: "Spot"}
		assert.True(t, IsDayOnly(s), n)
		assert.False(t, AllowsLongStay(s), n)
		assert.Equal(t, CapabilityDayOnly, CapabilityOf(s))
	}
}

func TestCapability_VIP(t *testing.T) {
	byNumber := Spot{Number: 99, Name: "Lodge"}
	byName := Spot{Number: 20, Name: "Lovné místo VIP"}

	for _, s := range []Spot{byNumber, byName} {
		assert.True(t, IsVIP(s))
		assert.True(t, AllowsLongStay(s))
		assert.False(t, IsDayOnly(s))
		assert.Equal(t, CapabilityVIP, CapabilityOf(s))
		assert.Equal(t, Durations(), AllowedDurations(s))
	}
}

func TestCheckCapability(t *testing.T) {
	dayOnly := Spot{Number: 10}
	longStay := Spot{Number: 3}

	assert.NoError(t, CheckCapability(dayOnly, DurationDay))
	assert.ErrorIs(t, CheckCapability(dayOnly, Duration48h), ErrCapabilityViolation)
	assert.ErrorIs(t, CheckCapability(dayOnly, Duration24h), ErrCapabilityViolation)
	assert.ErrorIs(t, CheckCapability(dayOnly, Duration("x")), ErrInvalidInput)

	for _, d := range Durations() {
		assert.NoError(t, CheckCapability(longStay, d))
	}
	assert.Equal(t, []Duration{DurationDay}, AllowedDurations(dayOnly))
}
