package repository

import (
	"context"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpotRepository interface {
	FindAll(ctx context.Context) ([]models.FishingSpot, error)
	FindByNumber(ctx context.Context, number int) (*models.FishingSpot, error)
	FindByNumberForUpdate(ctx context.Context, tx *gorm.DB, number int) (*models.FishingSpot, error)
	SetActive(ctx context.Context, number int, active bool) error
}

type spotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

func (r *spotRepository) FindAll(ctx context.Context) ([]models.FishingSpot, error) {
	var spots []models.FishingSpot
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

func (r *spotRepository) FindByNumber(ctx context.Context, number int) (*models.FishingSpot, error) {
	var spot models.FishingSpot
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&spot).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// FindByNumberForUpdate locks the spot row for the rest of tx. Every
// reservation insert for the spot goes through this lock.
func (r *spotRepository) FindByNumberForUpdate(ctx context.Context, tx *gorm.DB, number int) (*models.FishingSpot, error) {
	var spot models.FishingSpot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("number = ?", number).
		First(&spot).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) SetActive(ctx context.Context, number int, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.FishingSpot{}).
		Where("number = ?", number).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
