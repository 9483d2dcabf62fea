package models

import (
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
)

type FishingSpot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"uniqueIndex;not null" json:"number"`
	Name      string    `gorm:"not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *FishingSpot) Rules() availability.Spot {
	return availability.Spot{Number: s.Number, Name: s.Name, Active: s.Active}
}

func (s *FishingSpot) Capability() availability.Capability {
	return availability.CapabilityOf(s.Rules())
}
