package models

import (
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"gorm.io/datatypes"
)

// Competition blocks spots for its duration. An empty BlockedSpots list
// blocks every spot.
type Competition struct {
	ID           uint                     `gorm:"primaryKey" json:"id"`
	Name         string                   `gorm:"not null" json:"name"`
	Date         time.Time                `gorm:"not null;index" json:"date"`
	EndDate      *time.Time               `json:"end_date,omitempty"`
	Capacity     int                      `gorm:"not null" json:"capacity"`
	EntryFee     int                      `gorm:"not null" json:"entry_fee"`
	Active       bool                     `gorm:"not null;default:true" json:"active"`
	BlockedSpots datatypes.JSONSlice[int] `json:"blocked_spots"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`

	Registrations []CompetitionRegistration `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Competition) Rules() availability.Competition {
	return availability.Competition{
		ID:           c.ID,
		Active:       c.Active,
		Date:         c.Date,
		EndDate:      c.EndDate,
		BlockedSpots: []int(c.BlockedSpots),
	}
}

func CompetitionRules(cs []Competition) []availability.Competition {
	out := make([]availability.Competition, len(cs))
	for i := range cs {
		out[i] = cs[i].Rules()
	}
	return out
}

type CompetitionRegistration struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	CompetitionID  uint                        `gorm:"not null;index" json:"competition_id"`
	CustomerName   string                      `gorm:"not null" json:"customer_name"`
	Email          string                      `gorm:"not null" json:"email"`
	Phone          string                      `json:"phone"`
	Paid           bool                        `gorm:"not null;default:false" json:"paid"`
	Price          int                         `gorm:"not null" json:"price"`
	RentedGear     datatypes.JSONSlice[string] `json:"rented_gear,omitempty"`
	VariableSymbol string                      `gorm:"type:varchar(10);index" json:"variable_symbol"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`

	Competition *Competition `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`
}
