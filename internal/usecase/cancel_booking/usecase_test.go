package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func setup(t *testing.T) (*memstore.Store, *domain.Booking, *UseCase, *memstore.Cache, *memstore.Publisher) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	event, err := store.Events().Create(ctx, &domain.Event{
		TenantID: "acme", Slug: "consultation", Timezone: "Europe/Berlin",
		ScheduleType: domain.ScheduleRecurring, AccessMode: domain.AccessOpen, MaxParticipants: 1,
	})
	require.NoError(t, err)

	// 23:30 UTC 1 июня - это уже 2 июня в Берлине
	start := time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC)
	booking, err := store.Bookings().Create(ctx, &domain.Booking{
		EventID:         event.ID,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		CustomerName:    "Ann",
		CustomerEmail:   "ann@example.com",
		Status:          domain.StatusConfirmed,
		ManagementToken: uuid.NewString(),
	})
	require.NoError(t, err)

	cache := &memstore.Cache{}
	publisher := &memstore.Publisher{}
	uc := NewUseCase(store.Bookings(), store.Events(), cache, publisher, store.TxManager(), logger.NewNop()).
		WithTimeProvider(memstore.NewFixedClock(time.Date(2026, 5, 30, 12, 0, 0, 0, time.UTC)))

	return store, booking, uc, cache, publisher
}

func TestExecute_CancelFreesCapacity(t *testing.T) {
	store, booking, uc, cache, publisher := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{ManagementToken: booking.ManagementToken})
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	assert.False(t, resp.AlreadyCancelled)
	require.NotNil(t, resp.CancelledAt)
	assert.Zero(t, store.ActiveCount(booking.EventID, booking.StartTime))

	assert.Equal(t, []time.Time{time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)}, cache.InvalidatedDates())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notifications.BookingCancelled, events[0].Type)
}

func TestExecute_CancelTwiceIsNoop(t *testing.T) {
	store, booking, uc, _, publisher := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ManagementToken: booking.ManagementToken})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{ManagementToken: booking.ManagementToken})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.Equal(t, "CANCELLED", resp.Status)

	assert.Zero(t, store.ActiveCount(booking.EventID, booking.StartTime))
	assert.Len(t, publisher.Events(), 1)
}

func TestExecute_Errors(t *testing.T) {
	_, _, uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ManagementToken: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ManagementToken: uuid.NewString()})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
