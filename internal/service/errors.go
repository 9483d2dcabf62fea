package service

import (
	"errors"
	"fmt"

	"github.com/myrsple/rezervace-sub000/internal/availability"
)

var (
	ErrInvalidInput        = availability.ErrInvalidInput
	ErrConflict            = availability.ErrConflict
	ErrCapabilityViolation = availability.ErrCapabilityViolation

	ErrSpotNotFound         = errors.New("fishing spot not found")
	ErrSpotInactive         = errors.New("fishing spot is not bookable")
	ErrPastDay              = errors.New("cannot book a day in the past")
	ErrBlockedByCompetition = fmt.Errorf("%w: a competition occupies the spot", ErrConflict)
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrNotCancellable       = errors.New("reservation is already cancelled")

	ErrCompetitionNotFound  = errors.New("competition not found")
	ErrCompetitionClosed    = errors.New("competition registration is closed")
	ErrCompetitionFull      = errors.New("competition is full")
	ErrRegistrationNotFound = errors.New("registration not found")
)
