package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func setup(t *testing.T, schedule domain.ScheduleType) (*Service, *memstore.Cache) {
	t.Helper()
	store := memstore.New()

	_, err := store.Events().Create(context.Background(), &domain.Event{
		TenantID: "acme", Slug: "masterclass", Timezone: "Europe/Berlin",
		ScheduleType: schedule, AccessMode: domain.AccessOpen,
		DurationMin: 60, IntervalMin: 60, MaxParticipants: 10,
	})
	require.NoError(t, err)

	cache := &memstore.Cache{}
	return NewService(store.Events(), store.Sessions(), cache, logger.NewNop()), cache
}

func at(hour int) time.Time {
	return time.Date(2026, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	svc, cache := setup(t, domain.ScheduleManual)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "acme", "masterclass", &models.CreateSessionRequest{
		StartTime:       at(8),
		EndTime:         at(10),
		MaxParticipants: ptr.Ptr(25),
		HostName:        ptr.Ptr("Maria"),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, *resp.MaxParticipants)
	assert.Equal(t, []time.Time{time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}, cache.InvalidatedDates())

	_, err = svc.Create(ctx, "acme", "masterclass", &models.CreateSessionRequest{StartTime: at(8), EndTime: at(9)})
	assert.ErrorIs(t, err, ErrSessionAlreadyExists)

	_, err = svc.Create(ctx, "acme", "masterclass", &models.CreateSessionRequest{StartTime: at(12), EndTime: at(11)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_RecurringEventRejected(t *testing.T) {
	svc, _ := setup(t, domain.ScheduleRecurring)

	_, err := svc.Create(context.Background(), "acme", "masterclass", &models.CreateSessionRequest{StartTime: at(8), EndTime: at(9)})
	assert.ErrorIs(t, err, ErrNotManualEvent)
}

func TestUpdate_InvalidatesOldAndNewDay(t *testing.T) {
	svc, cache := setup(t, domain.ScheduleManual)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acme", "masterclass", &models.CreateSessionRequest{StartTime: at(8), EndTime: at(9)})
	require.NoError(t, err)

	newStart := at(8).AddDate(0, 0, 2)
	newEnd := newStart.Add(time.Hour)
	updated, err := svc.Update(ctx, "acme", "masterclass", created.ID, &models.UpdateSessionRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.StartTime)

	assert.Equal(t, []time.Time{
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
	}, cache.InvalidatedDates())

	_, err = svc.Update(ctx, "acme", "masterclass", 999, &models.UpdateSessionRequest{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListAndDelete(t *testing.T) {
	svc, _ := setup(t, domain.ScheduleManual)
	ctx := context.Background()

	// 23:30 UTC 31 мая - уже 1 июня в Берлине
	lateStart := time.Date(2026, 5, 31, 23, 30, 0, 0, time.UTC)
	for _, start := range []time.Time{lateStart, at(8), at(8).AddDate(0, 0, 1)} {
		_, err := svc.Create(ctx, "acme", "masterclass", &models.CreateSessionRequest{StartTime: start, EndTime: start.Add(time.Hour)})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "acme", "masterclass", &models.ListSessionsRequest{Start: "2026-06-01", End: "2026-06-01"})
	require.NoError(t, err)
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, lateStart, list.Sessions[0].StartTime)

	require.NoError(t, svc.Delete(ctx, "acme", "masterclass", list.Sessions[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, "acme", "masterclass", list.Sessions[0].ID), ErrSessionNotFound)

	_, err = svc.List(ctx, "acme", "masterclass", &models.ListSessionsRequest{Start: "june", End: "2026-06-01"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
