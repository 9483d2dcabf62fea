package service

import (
	"context"
	"sync"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/myrsple/rezervace-sub000/internal/repository"
	"gorm.io/gorm"
)

// --- Transactor ---

type fakeTx struct{ calls int }

func (f *fakeTx) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}

// --- SpotRepository ---

type mockSpotRepo struct {
	spots       map[int]*models.FishingSpot
	setActiveFn func(ctx context.Context, number int, active bool) error
}

func newSpotRepo(spots ...*models.FishingSpot) *mockSpotRepo {
	m := &mockSpotRepo{spots: map[int]*models.FishingSpot{}}
	for _, s := range spots {
		m.spots[s.Number] = s
	}
	return m
}

func (m *mockSpotRepo) FindAll(ctx context.Context) ([]models.FishingSpot, error) {
	var out []models.FishingSpot
	for _, s := range m.spots {
		out = append(out, *s)
	}
	return out, nil
}
func (m *mockSpotRepo) FindByNumber(ctx context.Context, number int) (*models.FishingSpot, error) {
	s, ok := m.spots[number]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}
func (m *mockSpotRepo) FindByNumberForUpdate(ctx context.Context, tx *gorm.DB, number int) (*models.FishingSpot, error) {
	return m.FindByNumber(ctx, number)
}
func (m *mockSpotRepo) SetActive(ctx context.Context, number int, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, number, active)
	}
	s, ok := m.spots[number]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Active = active
	return nil
}

// --- ReservationRepository ---

type mockReservationRepo struct {
	mu           sync.Mutex
	nextID       uint
	reservations []models.Reservation
	createFn     func(ctx context.Context, r *models.Reservation) error
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createFn != nil {
		if err := m.createFn(ctx, r); err != nil {
			return err
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.reservations = append(m.reservations, *r)
	return nil
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			cp := m.reservations[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) List(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Reservation(nil), m.reservations...), nil
}
func (m *mockReservationRepo) FindActiveBySpot(ctx context.Context, tx *gorm.DB, spotID uint) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.SpotID == spotID && r.Status != models.StatusCancelled {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockReservationRepo) SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error {
	return m.update(id, func(r *models.Reservation) bool { r.VariableSymbol = vs; return true })
}
func (m *mockReservationRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	changed := false
	err := m.update(id, func(r *models.Reservation) bool {
		changed = !r.Paid
		r.Paid = true
		return true
	})
	return changed, err
}
func (m *mockReservationRepo) Cancel(ctx context.Context, id uint) (bool, error) {
	changed := false
	err := m.update(id, func(r *models.Reservation) bool {
		if r.Status != models.StatusConfirmed {
			return false
		}
		r.Status = models.StatusCancelled
		changed = true
		return true
	})
	return changed, err
}

func (m *mockReservationRepo) update(id uint, fn func(r *models.Reservation) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			fn(&m.reservations[i])
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// --- CompetitionRepository ---

type mockCompetitionRepo struct {
	nextID       uint
	competitions []models.Competition
	updated      []models.Competition
	deleteFn     func(ctx context.Context, id uint) error
}

func (m *mockCompetitionRepo) Create(ctx context.Context, c *models.Competition) error {
	m.nextID++
	c.ID = m.nextID
	m.competitions = append(m.competitions, *c)
	return nil
}
func (m *mockCompetitionRepo) Update(ctx context.Context, c *models.Competition) error {
	m.updated = append(m.updated, *c)
	for i := range m.competitions {
		if m.competitions[i].ID == c.ID {
			m.competitions[i] = *c
		}
	}
	return nil
}
func (m *mockCompetitionRepo) FindByID(ctx context.Context, id uint) (*models.Competition, error) {
	for i := range m.competitions {
		if m.competitions[i].ID == id {
			cp := m.competitions[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCompetitionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Competition, error) {
	return m.FindByID(ctx, id)
}
func (m *mockCompetitionRepo) List(ctx context.Context, activeOnly bool) ([]models.Competition, error) {
	var out []models.Competition
	for _, c := range m.competitions {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
func (m *mockCompetitionRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]models.Competition, error) {
	return m.List(ctx, true)
}
func (m *mockCompetitionRepo) DeleteWithRegistrations(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- RegistrationRepository ---

type mockRegistrationRepo struct {
	nextID        uint
	registrations []models.CompetitionRegistration
	deleteFn      func(ctx context.Context, id uint) error
}

func (m *mockRegistrationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.CompetitionRegistration) error {
	m.nextID++
	r.ID = m.nextID
	m.registrations = append(m.registrations, *r)
	return nil
}
func (m *mockRegistrationRepo) CountByCompetition(ctx context.Context, tx *gorm.DB, competitionID uint) (int64, error) {
	var n int64
	for _, r := range m.registrations {
		if r.CompetitionID == competitionID {
			n++
		}
	}
	return n, nil
}
func (m *mockRegistrationRepo) FindByID(ctx context.Context, id uint) (*models.CompetitionRegistration, error) {
	for i := range m.registrations {
		if m.registrations[i].ID == id {
			cp := m.registrations[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegistrationRepo) ListByCompetition(ctx context.Context, competitionID uint) ([]models.CompetitionRegistration, error) {
	var out []models.CompetitionRegistration
	for _, r := range m.registrations {
		if r.CompetitionID == competitionID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockRegistrationRepo) SetVariableSymbol(ctx context.Context, tx *gorm.DB, id uint, vs string) error {
	for i := range m.registrations {
		if m.registrations[i].ID == id {
			m.registrations[i].VariableSymbol = vs
		}
	}
	return nil
}
func (m *mockRegistrationRepo) MarkPaid(ctx context.Context, id uint) (bool, error) {
	for i := range m.registrations {
		if m.registrations[i].ID == id {
			changed := !m.registrations[i].Paid
			m.registrations[i].Paid = true
			return changed, nil
		}
	}
	return false, nil
}
func (m *mockRegistrationRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Publisher ---

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

// fixedClock pins "now" to 08:00 UTC on the given day.
func fixedClock(y int, m time.Month, d int) Clock {
	t := time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}
