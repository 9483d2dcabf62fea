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

type CompetitionInput struct {
	Name         string
	Date         time.Time
	EndDate      *time.Time
	Capacity     int
	EntryFee     int
	Active       bool
	BlockedSpots []int
}

type RegistrationInput struct {
	CustomerName string
	Email        string
	Phone        string
	RentedGear   []string
}

type CompetitionService interface {
	CreateCompetition(ctx context.Context, in CompetitionInput) (*models.Competition, error)
	UpdateCompetition(ctx context.Context, id uint, in CompetitionInput) (*models.Competition, error)
	GetCompetition(ctx context.Context, id uint) (*models.Competition, error)
	ListCompetitions(ctx context.Context, activeOnly bool) ([]models.Competition, error)
	CompleteCompetition(ctx context.Context, id uint) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id uint) error

	Register(ctx context.Context, competitionID uint, in RegistrationInput) (*models.CompetitionRegistration, error)
	GetRegistration(ctx context.Context, id uint) (*models.CompetitionRegistration, error)
	ListRegistrations(ctx context.Context, competitionID uint) ([]models.CompetitionRegistration, error)
	MarkRegistrationPaid(ctx context.Context, id uint) (*models.CompetitionRegistration, error)
	DeleteRegistration(ctx context.Context, id uint) error
}

type competitionService struct {
	tx               repository.Transactor
	competitionRepo  repository.CompetitionRepository
	registrationRepo repository.RegistrationRepository
	publisher        Publisher
	account          string
	now              Clock
}

func NewCompetitionService(
	tx repository.Transactor,
	competitionRepo repository.CompetitionRepository,
	registrationRepo repository.RegistrationRepository,
	publisher Publisher,
	account string,
	now Clock,
) CompetitionService {
	if now == nil {
		now = time.Now
	}
	return &competitionService{
		tx:               tx,
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		publisher:        publisher,
		account:          account,
		now:              now,
	}
}

func validateCompetition(in CompetitionInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	case in.EndDate != nil && !in.EndDate.After(in.Date):
		return fmt.Errorf("%w: end date must be after date", ErrInvalidInput)
	case in.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	case in.EntryFee < 0:
		return fmt.Errorf("%w: entry fee must not be negative", ErrInvalidInput)
	}
	for _, n := range in.BlockedSpots {
		if n <= 0 {
			return fmt.Errorf("%w: invalid spot number %d", ErrInvalidInput, n)
		}
	}
	return nil
}

func (s *competitionService) CreateCompetition(ctx context.Context, in CompetitionInput) (*models.Competition, error) {
	if err := validateCompetition(in); err != nil {
		return nil, err
	}
	competition := &models.Competition{
		Name:         in.Name,
		Date:         in.Date,
		EndDate:      in.EndDate,
		Capacity:     in.Capacity,
		EntryFee:     in.EntryFee,
		Active:       in.Active,
		BlockedSpots: in.BlockedSpots,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}
	log.Printf("[CompetitionService] created competition %d: %s", competition.ID, competition.Name)
	return competition, nil
}

func (s *competitionService) UpdateCompetition(ctx context.Context, id uint, in CompetitionInput) (*models.Competition, error) {
	if err := validateCompetition(in); err != nil {
		return nil, err
	}
	competition, err := s.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	competition.Name = in.Name
	competition.Date = in.Date
	competition.EndDate = in.EndDate
	competition.Capacity = in.Capacity
	competition.EntryFee = in.EntryFee
	competition.Active = in.Active
	competition.BlockedSpots = in.BlockedSpots
	if err := s.competitionRepo.Update(ctx, competition); err != nil {
		return nil, fmt.Errorf("update competition: %w", err)
	}
	return competition, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	competition, err := s.competitionRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return competition, nil
}

// ListCompetitions with activeOnly keeps finished competitions listed for 48h
// past their end.
func (s *competitionService) ListCompetitions(ctx context.Context, activeOnly bool) ([]models.Competition, error) {
	competitions, err := s.competitionRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return competitions, nil
	}
	now := s.now()
	visible := competitions[:0]
	for _, c := range competitions {
		if availability.IsVisible(c.Rules(), now) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// CompleteCompetition ends a competition now by forcing its end date.
func (s *competitionService) CompleteCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	competition, err := s.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !now.After(competition.Date) {
		return nil, fmt.Errorf("%w: competition has not started yet", ErrInvalidInput)
	}
	competition.EndDate = &now
	if err := s.competitionRepo.Update(ctx, competition); err != nil {
		return nil, fmt.Errorf("complete competition: %w", err)
	}
	log.Printf("[CompetitionService] competition %d marked completed", id)
	return competition, nil
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id uint) error {
	if err := s.competitionRepo.DeleteWithRegistrations(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCompetitionNotFound
		}
		return err
	}
	log.Printf("[CompetitionService] deleted competition %d with its registrations", id)
	return nil
}

func (s *competitionService) Register(ctx context.Context, competitionID uint, in RegistrationInput) (*models.CompetitionRegistration, error) {
	var result *models.CompetitionRegistration
	var competition *models.Competition

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the competition row; serializes concurrent registrations
		c, err := s.competitionRepo.FindByIDForUpdate(ctx, tx, competitionID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCompetitionNotFound
			}
			return err
		}
		competition = c

		// 2. Registration closes when the competition starts
		if !c.Active || !s.now().Before(c.Date) {
			return ErrCompetitionClosed
		}

		// 3. Capacity
		count, err := s.registrationRepo.CountByCompetition(ctx, tx, competitionID)
		if err != nil {
			return err
		}
		if int(count) >= c.Capacity {
			return ErrCompetitionFull
		}

		price, err := pricing.RegistrationPrice(c.EntryFee, in.RentedGear)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		registration := &models.CompetitionRegistration{
			CompetitionID: competitionID,
			CustomerName:  in.CustomerName,
			Email:         in.Email,
			Phone:         in.Phone,
			Price:         price,
			RentedGear:    in.RentedGear,
		}
		if err := s.registrationRepo.Create(ctx, tx, registration); err != nil {
			return err
		}
		registration.VariableSymbol = pricing.VariableSymbol(pricing.PrefixRegistration, registration.ID)
		if err := s.registrationRepo.SetVariableSymbol(ctx, tx, registration.ID, registration.VariableSymbol); err != nil {
			return err
		}
		result = registration
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Competition = competition
	publish(ctx, s.publisher, s.registrationMessage(notify.KindRegistrationCreated, result))
	return result, nil
}

func (s *competitionService) GetRegistration(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	registration, err := s.registrationRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (s *competitionService) ListRegistrations(ctx context.Context, competitionID uint) ([]models.CompetitionRegistration, error) {
	if _, err := s.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	return s.registrationRepo.ListByCompetition(ctx, competitionID)
}

func (s *competitionService) MarkRegistrationPaid(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	registration, err := s.GetRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration.Paid {
		return registration, nil
	}
	changed, err := s.registrationRepo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	registration.Paid = true
	if changed {
		publish(ctx, s.publisher, s.registrationMessage(notify.KindRegistrationPaid, registration))
	}
	return registration, nil
}

func (s *competitionService) DeleteRegistration(ctx context.Context, id uint) error {
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrRegistrationNotFound
		}
		return err
	}
	return nil
}

func (s *competitionService) registrationMessage(kind notify.Kind, r *models.CompetitionRegistration) notify.Message {
	msg := notify.NewMessage(kind, s.now())
	msg.Email = r.Email
	msg.Name = r.CustomerName
	msg.Reference = r.ID
	if r.Competition != nil {
		msg.Title = r.Competition.Name
		start := r.Competition.Date
		msg.Start = &start
	}
	msg.Amount = r.Price
	msg.VariableSymbol = r.VariableSymbol
	msg.Account = s.account
	return msg
}
