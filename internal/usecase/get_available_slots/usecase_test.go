package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	slotsCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/dayloader"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCache struct {
	stored map[string][]domain.Slot
	getErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string][]domain.Slot)}
}

func (c *fakeCache) Get(_ context.Context, eventID int64, date time.Time) ([]domain.Slot, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	slots, ok := c.stored[slotsCache.Key(eventID, date)]
	if !ok {
		return nil, slotsCache.ErrCacheMiss
	}
	return slots, nil
}

func (c *fakeCache) Set(_ context.Context, eventID int64, date time.Time, slots []domain.Slot) error {
	c.sets++
	c.stored[slotsCache.Key(eventID, date)] = slots
	return nil
}

var monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T, mutate func(e *domain.Event)) (*memstore.Store, *domain.Event, *UseCase, *fakeCache) {
	t.Helper()
	store := memstore.New()

	event := &domain.Event{
		TenantID:         "acme",
		Slug:             "consultation",
		Timezone:         "UTC",
		ScheduleType:     domain.ScheduleRecurring,
		DurationMin:      60,
		IntervalMin:      60,
		MaxParticipants:  1,
		MinNoticeGeneral: 60,
		MinNoticeFirst:   60,
		AccessMode:       domain.AccessOpen,
		Config:           domain.WeeklyConfig{"monday": {{Start: "09:00", End: "17:00"}}},
	}
	if mutate != nil {
		mutate(event)
	}
	created, err := store.Events().Create(context.Background(), event)
	require.NoError(t, err)

	cache := newFakeCache()
	loader := dayloader.New(store.Overrides(), store.Sessions(), store.Bookings())
	uc := NewUseCase(store.Events(), loader, cache, logger.NewNop()).
		WithTimeProvider(fixedClock{now: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)})

	return store, created, uc, cache
}

func startTimes(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Start.Format(domain.TimeFormat))
	}
	return result
}

func TestExecute_Scenario(t *testing.T) {
	store, event, uc, cache := setup(t, nil)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, startTimes(resp.Slots))
	assert.Equal(t, "UTC", resp.Timezone)

	ten := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		EventID: event.ID, StartTime: ten, EndTime: ten.Add(time.Hour), Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	// запись брони сбрасывает кэш дня
	delete(cache.stored, slotsCache.Key(event.ID, monday))

	resp, err = uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, startTimes(resp.Slots))
}

func TestExecute_UsesCache(t *testing.T) {
	_, event, uc, cache := setup(t, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// подменяем содержимое кэша: ответ должен прийти из него
	nine := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	cache.stored[slotsCache.Key(event.ID, monday)] = []domain.Slot{{Start: nine, End: nine.Add(time.Hour), Capacity: 3, Booked: 1}}

	resp, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_CacheErrorFallsBackToEngine(t *testing.T) {
	_, _, uc, cache := setup(t, nil)
	cache.getErr = errors.New("connection refused")

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_StaleCachedSlotsDropped(t *testing.T) {
	_, event, uc, cache := setup(t, nil)
	uc.WithTimeProvider(fixedClock{now: time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)})

	var cached []domain.Slot
	for h := 9; h <= 16; h++ {
		start := time.Date(2026, 6, 1, h, 0, 0, 0, time.UTC)
		cached = append(cached, domain.Slot{Start: start, End: start.Add(time.Hour), Capacity: 1})
	}
	cache.stored[slotsCache.Key(event.ID, monday)] = cached

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, "12:00", startTimes(resp.Slots)[0])
}

func TestExecute_ClosedEvent(t *testing.T) {
	_, _, uc, cache := setup(t, func(e *domain.Event) { e.AccessMode = domain.AccessClosed })

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "acme", Slug: "consultation", Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, cache.sets)
}

func TestExecute_Errors(t *testing.T) {
	_, _, uc, _ := setup(t, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "missing", Date: monday})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = uc.Execute(ctx, &Request{TenantID: "acme", Slug: "", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
