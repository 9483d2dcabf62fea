// Package pricing holds the price lists for spot reservations, competition
// entries and rented gear. Prices are whole CZK.
package pricing

import (
	"errors"
	"fmt"

	"github.com/myrsple/rezervace-sub000/internal/availability"
)

var ErrUnknownGear = errors.New("unknown gear item")

var regular = map[availability.Duration]int{
	availability.DurationDay: 300,
	availability.Duration24h: 500,
	availability.Duration48h: 900,
	availability.Duration72h: 1300,
	availability.Duration96h: 1700,
}

var vip = map[availability.Duration]int{
	availability.DurationDay: 600,
	availability.Duration24h: 1000,
	availability.Duration48h: 1800,
	availability.Duration72h: 2600,
	availability.Duration96h: 3400,
}

// Gear is charged once per reservation or registration, not per day.
var Gear = map[string]int{
	"rod":       150,
	"net":       50,
	"chair":     50,
	"bivvy":     200,
	"bedchair":  150,
	"bait-boat": 400,
}

func SpotPrice(spot availability.Spot, d availability.Duration) (int, error) {
	table := regular
	if availability.IsVIP(spot) {
		table = vip
	}
	p, ok := table[d]
	if !ok {
		return 0, fmt.Errorf("%w: unknown duration code %q", availability.ErrInvalidInput, string(d))
	}
	return p, nil
}

func GearPrice(items []string) (int, error) {
	total := 0
	for _, item := range items {
		p, ok := Gear[item]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownGear, item)
		}
		total += p
	}
	return total, nil
}

func ReservationPrice(spot availability.Spot, d availability.Duration, gear []string) (int, error) {
	base, err := SpotPrice(spot, d)
	if err != nil {
		return 0, err
	}
	extra, err := GearPrice(gear)
	if err != nil {
		return 0, err
	}
	return base + extra, nil
}

func RegistrationPrice(entryFee int, gear []string) (int, error) {
	extra, err := GearPrice(gear)
	if err != nil {
		return 0, err
	}
	return entryFee + extra, nil
}

const (
	PrefixReservation  = 1
	PrefixRegistration = 2
)

// VariableSymbol builds the numeric payment-matching code: one prefix digit
// and the record id padded to nine digits.
func VariableSymbol(prefix int, id uint) string {
	return fmt.Sprintf("%d%09d", prefix, id%1_000_000_000)
}
