package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/middleware"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/repository"
	"github.com/myrsple/rezervace-sub000/internal/service"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn func(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error)
	getFn    func(ctx context.Context, id uint) (*models.Reservation, error)
	listFn   func(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error)
	paidFn   func(ctx context.Context, id uint) (*models.Reservation, error)
	cancelFn func(ctx context.Context, id uint) (*models.Reservation, error)
}

func (m *mockReservationService) CreateReservation(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, in)
}
func (m *mockReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.getFn(ctx, id)
}
func (m *mockReservationService) ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return m.listFn(ctx, filter)
}
func (m *mockReservationService) MarkPaid(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.paidFn(ctx, id)
}
func (m *mockReservationService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.cancelFn(ctx, id)
}

// --- Mock CalendarService ---

type mockCalendarService struct {
	calendarFn func(ctx context.Context, number int, from, to availability.CalendarDate) (*service.SpotCalendar, error)
	selectFn   func(ctx context.Context, number int, day availability.CalendarDate, preferred string) (availability.Selection, bool, error)
}

func (m *mockCalendarService) SpotCalendar(ctx context.Context, number int, from, to availability.CalendarDate) (*service.SpotCalendar, error) {
	return m.calendarFn(ctx, number, from, to)
}
func (m *mockCalendarService) SelectDay(ctx context.Context, number int, day availability.CalendarDate, preferred string) (availability.Selection, bool, error) {
	return m.selectFn(ctx, number, day, preferred)
}

// --- Mock SpotService ---

type mockSpotService struct {
	listFn      func(ctx context.Context) ([]models.FishingSpot, error)
	setActiveFn func(ctx context.Context, number int, active bool) (*models.FishingSpot, error)
}

func (m *mockSpotService) ListSpots(ctx context.Context) ([]models.FishingSpot, error) {
	return m.listFn(ctx)
}
func (m *mockSpotService) SetActive(ctx context.Context, number int, active bool) (*models.FishingSpot, error) {
	return m.setActiveFn(ctx, number, active)
}

// --- Mock CompetitionService ---

type mockCompetitionService struct {
	createFn    func(ctx context.Context, in service.CompetitionInput) (*models.Competition, error)
	updateFn    func(ctx context.Context, id uint, in service.CompetitionInput) (*models.Competition, error)
	getFn       func(ctx context.Context, id uint) (*models.Competition, error)
	listFn      func(ctx context.Context, activeOnly bool) ([]models.Competition, error)
	completeFn  func(ctx context.Context, id uint) (*models.Competition, error)
	deleteFn    func(ctx context.Context, id uint) error
	registerFn  func(ctx context.Context, id uint, in service.RegistrationInput) (*models.CompetitionRegistration, error)
	getRegFn    func(ctx context.Context, id uint) (*models.CompetitionRegistration, error)
	listRegsFn  func(ctx context.Context, id uint) ([]models.CompetitionRegistration, error)
	paidRegFn   func(ctx context.Context, id uint) (*models.CompetitionRegistration, error)
	deleteRegFn func(ctx context.Context, id uint) error
}

func (m *mockCompetitionService) CreateCompetition(ctx context.Context, in service.CompetitionInput) (*models.Competition, error) {
	return m.createFn(ctx, in)
}
func (m *mockCompetitionService) UpdateCompetition(ctx context.Context, id uint, in service.CompetitionInput) (*models.Competition, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockCompetitionService) GetCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	return m.getFn(ctx, id)
}
func (m *mockCompetitionService) ListCompetitions(ctx context.Context, activeOnly bool) ([]models.Competition, error) {
	return m.listFn(ctx, activeOnly)
}
func (m *mockCompetitionService) CompleteCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	return m.completeFn(ctx, id)
}
func (m *mockCompetitionService) DeleteCompetition(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockCompetitionService) Register(ctx context.Context, id uint, in service.RegistrationInput) (*models.CompetitionRegistration, error) {
	return m.registerFn(ctx, id, in)
}
func (m *mockCompetitionService) GetRegistration(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	return m.getRegFn(ctx, id)
}
func (m *mockCompetitionService) ListRegistrations(ctx context.Context, id uint) ([]models.CompetitionRegistration, error) {
	return m.listRegsFn(ctx, id)
}
func (m *mockCompetitionService) MarkRegistrationPaid(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	return m.paidRegFn(ctx, id)
}
func (m *mockCompetitionService) DeleteRegistration(ctx context.Context, id uint) error {
	return m.deleteRegFn(ctx, id)
}

// --- helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return e
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
