package availability

import (
	"fmt"
	"strings"
)

type Capability string

const (
	CapabilityDayOnly  Capability = "day-only"
	CapabilityLongStay Capability = "long-stay"
	CapabilityVIP      Capability = "vip"
)

const (
	VIPSpotNumber     = 99
	MaxLongStayNumber = 6
)

// Spot is the slice of a fishing spot the booking rules look at.
type Spot struct {
	Number int
	Name   string
	Active bool
}

func IsVIP(s Spot) bool {
	return s.Number == VIPSpotNumber || strings.Contains(strings.ToUpper(s.Name), "VIP")
}

func IsDayOnly(s Spot) bool {
	return !IsVIP(s) && s.Number > MaxLongStayNumber
}

func AllowsLongStay(s Spot) bool {
	return IsVIP(s) || s.Number <= MaxLongStayNumber
}

func CapabilityOf(s Spot) Capability {
	switch {
	case IsVIP(s):
		return CapabilityVIP
	case IsDayOnly(s):
		return CapabilityDayOnly
	default:
		return CapabilityLongStay
	}
}

// AllowedDurations lists the codes a spot accepts, in preference order.
func AllowedDurations(s Spot) []Duration {
	if IsDayOnly(s) {
		return []Duration{DurationDay}
	}
	return Durations()
}

func Allows(s Spot, d Duration) bool {
	if !d.Valid() {
		return false
	}
	if d.IsLongStay() {
		return AllowsLongStay(s)
	}
	return true
}

func CheckCapability(s Spot, d Duration) error {
	if !d.Valid() {
		return fmt.Errorf("%w: unknown duration code %q", ErrInvalidInput, string(d))
	}
	if !Allows(s, d) {
		return fmt.Errorf("%w: spot %d is %s, got %s", ErrCapabilityViolation, s.Number, CapabilityOf(s), d)
	}
	return nil
}
