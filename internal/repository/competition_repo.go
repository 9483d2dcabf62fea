package repository

import (
	"context"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	Update(ctx context.Context, competition *models.Competition) error
	FindByID(ctx context.Context, id uint) (*models.Competition, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Competition, error)
	List(ctx context.Context, activeOnly bool) ([]models.Competition, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]models.Competition, error)
	DeleteWithRegistrations(ctx context.Context, id uint) error
}

type competitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	return r.db.WithContext(ctx).Create(competition).Error
}

func (r *competitionRepository) Update(ctx context.Context, competition *models.Competition) error {
	return r.db.WithContext(ctx).
		Select("name", "date", "end_date", "capacity", "entry_fee", "active", "blocked_spots").
		Updates(competition).Error
}

func (r *competitionRepository) FindByID(ctx context.Context, id uint) (*models.Competition, error) {
	var competition models.Competition
	if err := r.db.WithContext(ctx).First(&competition, id).Error; err != nil {
		return nil, err
	}
	return &competition, nil
}

// FindByIDForUpdate acquires a row-level lock on the competition within the given transaction.
func (r *competitionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Competition, error) {
	var competition models.Competition
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&competition, id).Error; err != nil {
		return nil, err
	}
	return &competition, nil
}

func (r *competitionRepository) List(ctx context.Context, activeOnly bool) ([]models.Competition, error) {
	var competitions []models.Competition
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Order("date ASC, id ASC").Find(&competitions).Error; err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *competitionRepository) ListActive(ctx context.Context, tx *gorm.DB) ([]models.Competition, error) {
	var competitions []models.Competition
	if err := conn(r.db, tx).WithContext(ctx).Where("active = ?", true).Find(&competitions).Error; err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *competitionRepository) DeleteWithRegistrations(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competition_id = ?", id).Delete(&models.CompetitionRegistration{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Competition{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
