package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	lakeSpot  = &models.FishingSpot{ID: 1, Number: 3, Name: "Lovné místo 3", Active: true}
	shoreSpot = &models.FishingSpot{ID: 2, Number: 9, Name: "Lovné místo 9", Active: true}
	vipSpot   = &models.FishingSpot{ID: 3, Number: 99, Name: "VIP", Active: true}
)

type reservationFixture struct {
	svc          ReservationService
	spots        *mockSpotRepo
	reservations *mockReservationRepo
	competitions *mockCompetitionRepo
	publisher    *recordingPublisher
}

func newReservationFixture(spots ...*models.FishingSpot) *reservationFixture {
	f := &reservationFixture{
		spots:        newSpotRepo(spots...),
		reservations: &mockReservationRepo{},
		competitions: &mockCompetitionRepo{},
		publisher:    &recordingPublisher{},
	}
	f.svc = NewReservationService(&fakeTx{}, f.spots, f.reservations, f.competitions,
		f.publisher, "CZ6508000000192000145399", fixedClock(2026, time.May, 1))
	return f
}

func input(number int, day availability.CalendarDate, d string) CreateReservationInput {
	return CreateReservationInput{
		SpotNumber:   number,
		Day:          day,
		Duration:     d,
		CustomerName: "Jan Novák",
		Email:        "jan@example.cz",
	}
}

var may10 = availability.NewDate(2026, time.May, 10)

func TestCreateReservation_Success(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	in := input(3, may10, "48h")
	in.RentedGear = []string{"rod", "bivvy"}

	r, err := f.svc.CreateReservation(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, uint(1), r.ID)
	assert.Equal(t, models.StatusConfirmed, r.Status)
	assert.Equal(t, time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC), r.StartDate)
	assert.Equal(t, time.Date(2026, time.May, 12, 10, 0, 0, 0, time.UTC), r.EndDate)
	assert.Equal(t, 900+150+200, r.Price)
	assert.Equal(t, "1000000001", r.VariableSymbol)
	assert.False(t, r.Paid)
	assert.Equal(t, []string{"reservation.created"}, f.publisher.keys)
}

func TestCreateReservation_VIPPricing(t *testing.T) {
	f := newReservationFixture(vipSpot)

	r, err := f.svc.CreateReservation(context.Background(), input(99, may10, "24h"))

	require.NoError(t, err)
	assert.Equal(t, 1000, r.Price)
}

func TestCreateReservation_BackToBackStays(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, input(3, may10, "24h"))
	require.NoError(t, err)
	_, err = f.svc.CreateReservation(ctx, input(3, may10.AddDays(1), "24h"))
	assert.NoError(t, err)
}

func TestCreateReservation_Conflict(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, input(3, may10, "24h"))
	require.NoError(t, err)

	// The 24h stay holds the morning of the 11th.
	_, err = f.svc.CreateReservation(ctx, input(3, may10.AddDays(1), "day"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, f.publisher.keys, 1)
}

func TestCreateReservation_CancelledDoesNotBlock(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()

	first, err := f.svc.CreateReservation(ctx, input(3, may10, "day"))
	require.NoError(t, err)
	_, err = f.svc.CancelReservation(ctx, first.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateReservation(ctx, input(3, may10, "day"))
	assert.NoError(t, err)
}

func TestCreateReservation_DayOnlySpotRejectsLongStay(t *testing.T) {
	f := newReservationFixture(shoreSpot)

	_, err := f.svc.CreateReservation(context.Background(), input(9, may10, "48h"))

	assert.ErrorIs(t, err, ErrCapabilityViolation)
}

func TestCreateReservation_CapabilityCheckedBeforeInactive(t *testing.T) {
	inactive := *shoreSpot
	inactive.Active = false
	f := newReservationFixture(&inactive)

	_, err := f.svc.CreateReservation(context.Background(), input(9, may10, "72h"))
	assert.ErrorIs(t, err, ErrCapabilityViolation)

	_, err = f.svc.CreateReservation(context.Background(), input(9, may10, "day"))
	assert.ErrorIs(t, err, ErrSpotInactive)
}

func TestCreateReservation_InvalidInput(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateReservationInput
		want error
	}{
		{"unknown duration", input(3, may10, "12h"), ErrInvalidInput},
		{"missing day", input(3, availability.CalendarDate{}, "day"), ErrInvalidInput},
		{"past day", input(3, availability.NewDate(2026, time.April, 30), "day"), ErrPastDay},
		{"unknown spot", input(42, may10, "day"), ErrSpotNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateReservation(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateReservation_UnknownGear(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	in := input(3, may10, "day")
	in.RentedGear = []string{"harpoon"}

	_, err := f.svc.CreateReservation(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.reservations.reservations)
}

func TestCreateReservation_BlockedByCompetition(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	end := time.Date(2026, time.May, 12, 18, 0, 0, 0, time.UTC)
	f.competitions.competitions = []models.Competition{{
		ID:      1,
		Active:  true,
		Date:    time.Date(2026, time.May, 11, 6, 0, 0, 0, time.UTC),
		EndDate: &end,
	}}

	// 72h from the 9th runs into the competition on the 11th.
	_, err := f.svc.CreateReservation(context.Background(), input(3, availability.NewDate(2026, time.May, 9), "72h"))
	assert.ErrorIs(t, err, ErrBlockedByCompetition)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.CreateReservation(context.Background(), input(3, availability.NewDate(2026, time.May, 13), "day"))
	assert.NoError(t, err)
}

func TestCreateReservation_StorageConflict(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	f.reservations.createFn = func(ctx context.Context, r *models.Reservation) error {
		return errors.New("boom")
	}

	_, err := f.svc.CreateReservation(context.Background(), input(3, may10, "day"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Empty(t, f.publisher.keys)
}

func TestCreateReservation_PublishFailureDoesNotFail(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.CreateReservation(context.Background(), input(3, may10, "day"))

	assert.NoError(t, err)
}

func TestCreateReservation_NilPublisher(t *testing.T) {
	spots := newSpotRepo(lakeSpot)
	svc := NewReservationService(&fakeTx{}, spots, &mockReservationRepo{}, &mockCompetitionRepo{},
		nil, "", fixedClock(2026, time.May, 1))

	_, err := svc.CreateReservation(context.Background(), input(3, may10, "day"))

	assert.NoError(t, err)
}

func TestCreateReservation_ConcurrentSameSlot(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	var lock sync.Mutex
	f.svc = NewReservationService(&lockingTx{mu: &lock}, f.spots, f.reservations, f.competitions,
		nil, "", fixedClock(2026, time.May, 1))

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateReservation(context.Background(), input(3, may10, "24h"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestMarkPaid_Idempotent(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()
	r, err := f.svc.CreateReservation(ctx, input(3, may10, "day"))
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	again, err := f.svc.MarkPaid(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, again.Paid)
	assert.Equal(t, []string{"reservation.created", "reservation.paid"}, f.publisher.keys)
}

func TestMarkPaid_NotFound(t *testing.T) {
	f := newReservationFixture(lakeSpot)

	_, err := f.svc.MarkPaid(context.Background(), 77)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservation(t *testing.T) {
	f := newReservationFixture(lakeSpot)
	ctx := context.Background()
	r, err := f.svc.CreateReservation(ctx, input(3, may10, "day"))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	_, err = f.svc.CancelReservation(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, []string{"reservation.created", "reservation.cancelled"}, f.publisher.keys)
}

// lockingTx serialises transactions the way the spot row lock does.
type lockingTx struct{ mu *sync.Mutex }

func (l *lockingTx) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(nil)
}
