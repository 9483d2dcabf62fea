package dto

import (
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/models"
)

type SpotResponse struct {
	Number     int                     `json:"number"`
	Name       string                  `json:"name"`
	Active     bool                    `json:"active"`
	Capability availability.Capability `json:"capability"`
	Durations  []availability.Duration `json:"durations"`
}

type CalendarResponse struct {
	Spot SpotResponse            `json:"spot"`
	Days []availability.DayClass `json:"days"`
}

type SelectionResponse struct {
	Available bool                    `json:"available"`
	Day       string                  `json:"day"`
	Duration  availability.Duration   `json:"duration,omitempty"`
	Start     *time.Time              `json:"start,omitempty"`
	End       *time.Time              `json:"end,omitempty"`
	FellBack  bool                    `json:"fell_back"`
	Options   []availability.Duration `json:"options"`
}

type ReservationResponse struct {
	ID             uint                     `json:"id"`
	SpotNumber     int                      `json:"spot_number,omitempty"`
	SpotName       string                   `json:"spot_name,omitempty"`
	CustomerName   string                   `json:"customer_name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone,omitempty"`
	StartDate      time.Time                `json:"start_date"`
	EndDate        time.Time                `json:"end_date"`
	Duration       availability.Duration    `json:"duration"`
	Status         models.ReservationStatus `json:"status"`
	Paid           bool                     `json:"paid"`
	RentedGear     []string                 `json:"rented_gear"`
	Price          int                      `json:"price"`
	VariableSymbol string                   `json:"variable_symbol"`
	CreatedAt      time.Time                `json:"created_at"`
}

// PublicReservationResponse is what an anonymous caller sees. Ids are
// sequential, so it carries no customer contact details.
type PublicReservationResponse struct {
	ID             uint                     `json:"id"`
	SpotNumber     int                      `json:"spot_number,omitempty"`
	SpotName       string                   `json:"spot_name,omitempty"`
	StartDate      time.Time                `json:"start_date"`
	EndDate        time.Time                `json:"end_date"`
	Duration       availability.Duration    `json:"duration"`
	Status         models.ReservationStatus `json:"status"`
	Paid           bool                     `json:"paid"`
	Price          int                      `json:"price"`
	VariableSymbol string                   `json:"variable_symbol"`
}

type CompetitionResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Date         time.Time  `json:"date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Capacity     int        `json:"capacity"`
	EntryFee     int        `json:"entry_fee"`
	Active       bool       `json:"active"`
	Completed    bool       `json:"completed"`
	BlockedSpots []int      `json:"blocked_spots"`
}

type RegistrationResponse struct {
	ID              uint      `json:"id"`
	CompetitionID   uint      `json:"competition_id"`
	CompetitionName string    `json:"competition_name,omitempty"`
	CustomerName    string    `json:"customer_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Paid            bool      `json:"paid"`
	Price           int       `json:"price"`
	RentedGear      []string  `json:"rented_gear"`
	VariableSymbol  string    `json:"variable_symbol"`
	CreatedAt       time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToSpotResponse(s *models.FishingSpot) SpotResponse {
	rules := s.Rules()
	return SpotResponse{
		Number:     s.Number,
		Name:       s.Name,
		Active:     s.Active,
		Capability: availability.CapabilityOf(rules),
		Durations:  availability.AllowedDurations(rules),
	}
}

func ToSelectionResponse(sel availability.Selection, ok bool) SelectionResponse {
	resp := SelectionResponse{
		Available: ok,
		Day:       sel.Day.String(),
		Options:   sel.Available,
	}
	if resp.Options == nil {
		resp.Options = []availability.Duration{}
	}
	if !ok {
		return resp
	}
	start, end := sel.Interval.Start, sel.Interval.End
	resp.Duration = sel.Duration
	resp.Start, resp.End = &start, &end
	resp.FellBack = sel.FellBack
	return resp
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		Email:          r.Email,
		Phone:          r.Phone,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Duration:       r.Duration,
		Status:         r.Status,
		Paid:           r.Paid,
		RentedGear:     nonNil(r.RentedGear),
		Price:          r.Price,
		VariableSymbol: r.VariableSymbol,
		CreatedAt:      r.CreatedAt,
	}
	if r.Spot != nil {
		resp.SpotNumber = r.Spot.Number
		resp.SpotName = r.Spot.Name
	}
	return resp
}

func ToPublicReservationResponse(r *models.Reservation) PublicReservationResponse {
	resp := PublicReservationResponse{
		ID:             r.ID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Duration:       r.Duration,
		Status:         r.Status,
		Paid:           r.Paid,
		Price:          r.Price,
		VariableSymbol: r.VariableSymbol,
	}
	if r.Spot != nil {
		resp.SpotNumber = r.Spot.Number
		resp.SpotName = r.Spot.Name
	}
	return resp
}

func ToReservationResponses(rs []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(rs))
	for i := range rs {
		out[i] = ToReservationResponse(&rs[i])
	}
	return out
}

func ToCompetitionResponse(c *models.Competition, now time.Time) CompetitionResponse {
	blocked := []int(c.BlockedSpots)
	if blocked == nil {
		blocked = []int{}
	}
	return CompetitionResponse{
		ID:           c.ID,
		Name:         c.Name,
		Date:         c.Date,
		EndDate:      c.EndDate,
		Capacity:     c.Capacity,
		EntryFee:     c.EntryFee,
		Active:       c.Active,
		Completed:    availability.IsCompleted(c.Rules(), now),
		BlockedSpots: blocked,
	}
}

func ToCompetitionResponses(cs []models.Competition, now time.Time) []CompetitionResponse {
	out := make([]CompetitionResponse, len(cs))
	for i := range cs {
		out[i] = ToCompetitionResponse(&cs[i], now)
	}
	return out
}

func ToRegistrationResponse(r *models.CompetitionRegistration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:             r.ID,
		CompetitionID:  r.CompetitionID,
		CustomerName:   r.CustomerName,
		Email:          r.Email,
		Phone:          r.Phone,
		Paid:           r.Paid,
		Price:          r.Price,
		RentedGear:     nonNil(r.RentedGear),
		VariableSymbol: r.VariableSymbol,
		CreatedAt:      r.CreatedAt,
	}
	if r.Competition != nil {
		resp.CompetitionName = r.Competition.Name
	}
	return resp
}

func ToRegistrationResponses(rs []models.CompetitionRegistration) []RegistrationResponse {
	out := make([]RegistrationResponse, len(rs))
	for i := range rs {
		out[i] = ToRegistrationResponse(&rs[i])
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
