package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/notify"
	"github.com/myrsple/rezervace-sub000/internal/pricing"
	"github.com/myrsple/rezervace-sub000/internal/repository"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	SpotNumber   int
	Day          availability.CalendarDate
	Duration     string
	CustomerName string
	Email        string
	Phone        string
	RentedGear   []string
}

type ReservationService interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error)
	MarkPaid(ctx context.Context, id uint) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id uint) (*models.Reservation, error)
}

type reservationService struct {
	tx              repository.Transactor
	spotRepo        repository.SpotRepository
	reservationRepo repository.ReservationRepository
	competitionRepo repository.CompetitionRepository
	publisher       Publisher
	account         string
	now             Clock
}

func NewReservationService(
	tx repository.Transactor,
	spotRepo repository.SpotRepository,
	reservationRepo repository.ReservationRepository,
	competitionRepo repository.CompetitionRepository,
	publisher Publisher,
	account string,
	now Clock,
) ReservationService {
	if now == nil {
		now = time.Now
	}
	return &reservationService{
		tx:              tx,
		spotRepo:        spotRepo,
		reservationRepo: reservationRepo,
		competitionRepo: competitionRepo,
		publisher:       publisher,
		account:         account,
		now:             now,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	duration, err := availability.ParseDuration(in.Duration)
	if err != nil {
		return nil, err
	}
	if in.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	today := availability.DateOf(s.now())
	if in.Day.Before(today) {
		return nil, ErrPastDay
	}
	interval, err := availability.ComputeInterval(in.Day, duration)
	if err != nil {
		return nil, err
	}

	var result *models.Reservation

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the spot row; serializes concurrent submissions for this spot
		spot, err := s.spotRepo.FindByNumberForUpdate(ctx, tx, in.SpotNumber)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrSpotNotFound
			}
			return err
		}
		rules := spot.Rules()

		// 2. Spot must accept bookings of this length
		if err := availability.CheckCapability(rules, duration); err != nil {
			return err
		}
		if !spot.Active {
			return ErrSpotInactive
		}
		price, err := pricing.ReservationPrice(rules, duration, in.RentedGear)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. No competition on any day of the stay
		comps, err := s.competitionRepo.ListActive(ctx, tx)
		if err != nil {
			return err
		}
		compRules := models.CompetitionRules(comps)
		for _, day := range interval.Days() {
			if availability.IsBlockedByCompetition(rules, day, compRules) {
				return ErrBlockedByCompetition
			}
		}

		// 4. Re-validate against the freshest reservation set
		existing, err := s.reservationRepo.FindActiveBySpot(ctx, tx, spot.ID)
		if err != nil {
			return err
		}
		if availability.HasConflict(rules, interval, models.Bookings(existing)) {
			return ErrConflict
		}

		// 5. Insert
		reservation := &models.Reservation{
			SpotID:       spot.ID,
			CustomerName: in.CustomerName,
			Email:        in.Email,
			Phone:        in.Phone,
			StartDate:    interval.Start,
			EndDate:      interval.End,
			Duration:     duration,
			Status:       models.StatusConfirmed,
			RentedGear:   in.RentedGear,
			Price:        price,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			if repository.IsConflict(err) {
				return ErrConflict
			}
			return err
		}
		reservation.VariableSymbol = pricing.VariableSymbol(pricing.PrefixReservation, reservation.ID)
		if err := s.reservationRepo.SetVariableSymbol(ctx, tx, reservation.ID, reservation.VariableSymbol); err != nil {
			return err
		}
		reservation.Spot = spot
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ReservationService] spot %d reserved %s..%s (%s), id %d",
		in.SpotNumber, result.StartDate.Format(time.RFC3339), result.EndDate.Format(time.RFC3339), duration, result.ID)
	publish(ctx, s.publisher, s.reservationMessage(notify.KindReservationCreated, result))
	return result, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return s.reservationRepo.List(ctx, filter)
}

// MarkPaid records a received payment. Paying twice is a no-op; there is no
// way back to unpaid.
func (s *reservationService) MarkPaid(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Paid {
		return reservation, nil
	}

	changed, err := s.reservationRepo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	reservation.Paid = true
	if changed {
		publish(ctx, s.publisher, s.reservationMessage(notify.KindReservationPaid, reservation))
	}
	return reservation, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == models.StatusCancelled {
		return nil, ErrNotCancellable
	}

	changed, err := s.reservationRepo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrNotCancellable
	}
	reservation.Status = models.StatusCancelled
	publish(ctx, s.publisher, s.reservationMessage(notify.KindReservationCancelled, reservation))
	return reservation, nil
}

func (s *reservationService) reservationMessage(kind notify.Kind, r *models.Reservation) notify.Message {
	msg := notify.NewMessage(kind, s.now())
	msg.Email = r.Email
	msg.Name = r.CustomerName
	msg.Reference = r.ID
	if r.Spot != nil {
		msg.Title = r.Spot.Name
	}
	start, end := r.StartDate, r.EndDate
	msg.Start, msg.End = &start, &end
	msg.Amount = r.Price
	msg.VariableSymbol = r.VariableSymbol
	msg.Account = s.account
	return msg
}
