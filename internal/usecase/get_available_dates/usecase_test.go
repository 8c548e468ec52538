package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/dayloader"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func formatDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.Format(domain.DateFormat))
	}
	return result
}

func setup(t *testing.T) (*memstore.Store, *domain.Event, *UseCase) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	event, err := store.Events().Create(ctx, &domain.Event{
		TenantID:        "acme",
		Slug:            "consultation",
		Timezone:        "UTC",
		ScheduleType:    domain.ScheduleRecurring,
		DurationMin:     60,
		IntervalMin:     60,
		MaxParticipants: 1,
		AccessMode:      domain.AccessOpen,
		Config: domain.WeeklyConfig{
			"monday":    {{Start: "09:00", End: "10:00"}},
			"wednesday": {{Start: "09:00", End: "11:00"}},
		},
	})
	require.NoError(t, err)

	loader := dayloader.New(store.Overrides(), store.Sessions(), store.Bookings())
	uc := NewUseCase(store.Events(), loader, 62, logger.NewNop()).
		WithTimeProvider(fixedClock{now: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)})

	return store, event, uc
}

func TestExecute_ListsBookableDays(t *testing.T) {
	store, event, uc := setup(t)
	ctx := context.Background()

	// 2026-06-01 понедельник, 2026-06-03 среда, 2026-06-08 понедельник
	resp, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Start: day(t, "2026-06-01"), End: day(t, "2026-06-08")})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-06-01", "2026-06-03", "2026-06-08"}, formatDates(resp.Dates))

	// blackout на среду и занятый единственный слот понедельника
	_, err = store.Overrides().Upsert(ctx, &domain.Override{EventID: event.ID, Date: day(t, "2026-06-03"), IsUnavailable: true})
	require.NoError(t, err)

	nine := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err = store.Bookings().Create(ctx, &domain.Booking{EventID: event.ID, StartTime: nine, EndTime: nine.Add(time.Hour), Status: domain.StatusConfirmed})
	require.NoError(t, err)

	resp, err = uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Start: day(t, "2026-06-01"), End: day(t, "2026-06-08")})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-06-08"}, formatDates(resp.Dates))
}

func TestExecute_RangeEdges(t *testing.T) {
	_, _, uc := setup(t)
	ctx := context.Background()

	t.Run("reversed range is empty", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Start: day(t, "2026-06-08"), End: day(t, "2026-06-01")})
		require.NoError(t, err)
		assert.Empty(t, resp.Dates)
	})

	t.Run("range too large is clamped", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation", Start: day(t, "2026-06-01"), End: day(t, "2026-12-31")})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Dates)
		assert.Equal(t, "2026-06-01", resp.Dates[0].Format(domain.DateFormat))
		// 62 дня с 2026-06-01 заканчиваются 2026-08-01 (суббота), последняя среда 2026-07-29
		assert.Equal(t, "2026-07-29", resp.Dates[len(resp.Dates)-1].Format(domain.DateFormat))
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "nope", Start: day(t, "2026-06-01"), End: day(t, "2026-06-02")})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{TenantID: "acme", Slug: "consultation"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
