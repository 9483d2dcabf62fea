package dto

import "time"

type CreateReservationRequest struct {
	SpotNumber   int      `json:"spot_number" validate:"required,gt=0"`
	Day          string   `json:"day" validate:"required,datetime=2006-01-02"`
	Duration     string   `json:"duration" validate:"required,oneof=day 24h 48h 72h 96h"`
	CustomerName string   `json:"customer_name" validate:"required,max=120"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"omitempty,max=32"`
	RentedGear   []string `json:"rented_gear" validate:"omitempty,dive,required"`
}

type RegistrationRequest struct {
	CustomerName string   `json:"customer_name" validate:"required,max=120"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"omitempty,max=32"`
	RentedGear   []string `json:"rented_gear" validate:"omitempty,dive,required"`
}

type CompetitionRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Date         time.Time  `json:"date" validate:"required"`
	EndDate      *time.Time `json:"end_date" validate:"omitempty,gtfield=Date"`
	Capacity     int        `json:"capacity" validate:"required,gt=0"`
	EntryFee     int        `json:"entry_fee" validate:"gte=0"`
	Active       *bool      `json:"active"`
	BlockedSpots []int      `json:"blocked_spots" validate:"omitempty,dive,gt=0"`
}

type SetSpotActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}
