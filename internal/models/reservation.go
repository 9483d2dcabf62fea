package models

import (
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"gorm.io/datatypes"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	SpotID         uint                        `gorm:"not null;index" json:"spot_id"`
	CustomerName   string                      `gorm:"not null" json:"customer_name"`
	Email          string                      `gorm:"not null" json:"email"`
	Phone          string                      `json:"phone"`
	StartDate      time.Time                   `gorm:"not null" json:"start_date"`
	EndDate        time.Time                   `gorm:"not null" json:"end_date"`
	Duration       availability.Duration       `gorm:"type:varchar(8);not null" json:"duration"`
	Status         ReservationStatus           `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	Paid           bool                        `gorm:"not null;default:false" json:"paid"`
	RentedGear     datatypes.JSONSlice[string] `json:"rented_gear,omitempty"`
	Price          int                         `gorm:"not null" json:"price"`
	VariableSymbol string                      `gorm:"type:varchar(10);index" json:"variable_symbol"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`

	Spot *FishingSpot `gorm:"foreignKey:SpotID" json:"spot,omitempty"`
}

func (r *Reservation) Booking() availability.Booking {
	return availability.Booking{
		Start:     r.StartDate,
		End:       r.EndDate,
		Duration:  r.Duration,
		Cancelled: r.Status == StatusCancelled,
	}
}

func Bookings(rs []Reservation) []availability.Booking {
	out := make([]availability.Booking, len(rs))
	for i := range rs {
		out[i] = rs[i].Booking()
	}
	return out
}
