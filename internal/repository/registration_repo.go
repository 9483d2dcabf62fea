package repository

import (
	"context"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, registration *models.CompetitionRegistration) error
	CountByCompetition(ctx context.Context, tx *gorm.DB, competitionID uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.CompetitionRegistration, error)
	ListByCompetition(ctx context.Context, competitionID uint) ([]models.CompetitionRegistration, error)
	SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error
	MarkPaid(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, registration *models.CompetitionRegistration) error {
	return tx.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) CountByCompetition(ctx context.Context, tx *gorm.DB, competitionID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.CompetitionRegistration{}).
		Where("competition_id = ?", competitionID).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	var registration models.CompetitionRegistration
	if err := r.db.WithContext(ctx).Preload("Competition").First(&registration, id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) ListByCompetition(ctx context.Context, competitionID uint) ([]models.CompetitionRegistration, error) {
	var registrations []models.CompetitionRegistration
	err := r.db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("id ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationRepository) SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error {
	return tx.WithContext(ctx).
		Model(&models.CompetitionRegistration{}).
		Where("id = ?", id).
		Update("variable_symbol", vs).Error
}

func (r *registrationRepository) MarkPaid(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CompetitionRegistration{}).
		Where("id = ? AND paid = ?", id, false).
		Update("paid", true)
	return res.RowsAffected > 0, res.Error
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CompetitionRegistration{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
