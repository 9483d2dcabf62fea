package repository

import (
	"context"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"gorm.io/gorm"
)

type ReservationFilter struct {
	SpotID *uint
	Status *models.ReservationStatus
	Paid   *bool
	From   *time.Time
	To     *time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	FindActiveBySpot(ctx context.Context, tx *gorm.DB, spotID uint) ([]models.Reservation, error)
	SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error
	MarkPaid(ctx context.Context, id uint) (bool, error)
	Cancel(ctx context.Context, id uint) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Preload("Spot").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).Preload("Spot")
	if filter.SpotID != nil {
		q = q.Where("spot_id = ?", *filter.SpotID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Paid != nil {
		q = q.Where("paid = ?", *filter.Paid)
	}
	if filter.From != nil {
		q = q.Where("end_date > ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_date < ?", *filter.To)
	}
	if err := q.Order("start_date ASC, id ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindActiveBySpot returns every non-cancelled reservation of the spot. Pass
// the transaction holding the spot lock to read a consistent set, or nil.
func (r *reservationRepository) FindActiveBySpot(ctx context.Context, tx *gorm.DB, spotID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := conn(r.db, tx).WithContext(ctx).
		Where("spot_id = ? AND status <> ?", spotID, models.StatusCancelled).
		Order("start_date ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("variable_symbol", vs).Error
}

// MarkPaid flips paid to true. It reports false when the row was already
// paid; paid never goes back to false.
func (r *reservationRepository) MarkPaid(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND paid = ?", id, false).
		Update("paid", true)
	return res.RowsAffected > 0, res.Error
}

// Cancel moves a CONFIRMED reservation to CANCELLED and reports whether it did.
func (r *reservationRepository) Cancel(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.StatusConfirmed).
		Update("status", models.StatusCancelled)
	return res.RowsAffected > 0, res.Error
}
