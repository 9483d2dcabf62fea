package service

import (
	"context"
	"fmt"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/repository"
)

const maxCalendarDays = 62

type SpotCalendar struct {
	Spot       *models.FishingSpot
	Capability availability.Capability
	Durations  []availability.Duration
	Days       []availability.DayClass
}

// CalendarService projects availability for display. Reads are not
// serialised with bookings; CreateReservation re-validates.
type CalendarService interface {
	SpotCalendar(ctx context.Context, spotNumber int, from, to availability.CalendarDate) (*SpotCalendar, error)
	SelectDay(ctx context.Context, spotNumber int, day availability.CalendarDate, preferred string) (availability.Selection, bool, error)
}

type calendarService struct {
	spotRepo        repository.SpotRepository
	reservationRepo repository.ReservationRepository
	competitionRepo repository.CompetitionRepository
	now             Clock
}

func NewCalendarService(
	spotRepo repository.SpotRepository,
	reservationRepo repository.ReservationRepository,
	competitionRepo repository.CompetitionRepository,
	now Clock,
) CalendarService {
	if now == nil {
		now = time.Now
	}
	return &calendarService{
		spotRepo:        spotRepo,
		reservationRepo: reservationRepo,
		competitionRepo: competitionRepo,
		now:             now,
	}
}

func (s *calendarService) SpotCalendar(ctx context.Context, spotNumber int, from, to availability.CalendarDate) (*SpotCalendar, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidInput)
	}
	if to.Midnight().Sub(from.Midnight()) >= maxCalendarDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, maxCalendarDays)
	}

	spot, bookings, comps, err := s.load(ctx, spotNumber)
	if err != nil {
		return nil, err
	}

	rules := spot.Rules()
	today := availability.DateOf(s.now())
	return &SpotCalendar{
		Spot:       spot,
		Capability: availability.CapabilityOf(rules),
		Durations:  availability.AllowedDurations(rules),
		Days:       availability.ProjectRange(rules, from, to, today, bookings, comps),
	}, nil
}

func (s *calendarService) SelectDay(ctx context.Context, spotNumber int, day availability.CalendarDate, preferred string) (availability.Selection, bool, error) {
	d, err := availability.ParseDuration(preferred)
	if err != nil {
		return availability.Selection{}, false, err
	}

	spot, bookings, comps, err := s.load(ctx, spotNumber)
	if err != nil {
		return availability.Selection{}, false, err
	}
	if !spot.Active {
		return availability.Selection{Day: day}, false, nil
	}

	today := availability.DateOf(s.now())
	sel, ok := availability.SelectDay(spot.Rules(), day, d, today, bookings, comps)
	return sel, ok, nil
}

func (s *calendarService) load(ctx context.Context, spotNumber int) (*models.FishingSpot, []availability.Booking, []availability.Competition, error) {
	spot, err := s.spotRepo.FindByNumber(ctx, spotNumber)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, nil, ErrSpotNotFound
		}
		return nil, nil, nil, err
	}
	reservations, err := s.reservationRepo.FindActiveBySpot(ctx, nil, spot.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	comps, err := s.competitionRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return spot, models.Bookings(reservations), models.CompetitionRules(comps), nil
}
