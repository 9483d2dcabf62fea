package service

import (
	"context"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/repository"
)

type SpotService interface {
	ListSpots(ctx context.Context) ([]models.FishingSpot, error)
	SetActive(ctx context.Context, number int, active bool) (*models.FishingSpot, error)
}

type spotService struct {
	repo repository.SpotRepository
}

func NewSpotService(repo repository.SpotRepository) SpotService {
	return &spotService{repo: repo}
}

func (s *spotService) ListSpots(ctx context.Context) ([]models.FishingSpot, error) {
	return s.repo.FindAll(ctx)
}

func (s *spotService) SetActive(ctx context.Context, number int, active bool) (*models.FishingSpot, error) {
	if err := s.repo.SetActive(ctx, number, active); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	return s.repo.FindByNumber(ctx, number)
}
