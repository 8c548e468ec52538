package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fixture struct {
	store *memstore.Store
	svc   *Service
	event *domain.Event
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()

	event, err := store.Events().Create(context.Background(), &domain.Event{
		TenantID: "acme", Slug: "consultation", Title: "Consultation", Timezone: "UTC",
		ScheduleType: domain.ScheduleRecurring, AccessMode: domain.AccessOpen,
		DurationMin: 30, IntervalMin: 30, MaxParticipants: 5,
	})
	require.NoError(t, err)

	return &fixture{
		store: store,
		svc:   NewService(store.Bookings(), store.Events(), logger.NewNop()),
		event: event,
	}
}

func (f *fixture) book(t *testing.T, start time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		EventID:         f.event.ID,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		CustomerName:    "Ann",
		CustomerEmail:   "ann@example.com",
		Status:          status,
		ManagementToken: uuid.NewString(),
	})
	require.NoError(t, err)
	return b
}

func TestListEventBookings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	june1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	f.book(t, june1, domain.StatusConfirmed)
	f.book(t, june1.Add(time.Hour), domain.StatusCancelled)
	f.book(t, june1.AddDate(0, 0, 1), domain.StatusConfirmed)
	f.book(t, june1.AddDate(0, 0, 10), domain.StatusConfirmed)

	t.Run("date range is inclusive and skips cancelled", func(t *testing.T) {
		resp, err := f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{
			TenantID: "acme", Slug: "consultation", Start: "2026-06-01", End: "2026-06-02",
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 2)
		assert.Equal(t, june1, resp.Bookings[0].StartTime)
	})

	t.Run("include cancelled", func(t *testing.T) {
		resp, err := f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{
			TenantID: "acme", Slug: "consultation", Start: "2026-06-01", End: "2026-06-02", IncludeCancelled: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 3)
	})

	t.Run("RFC3339 bounds", func(t *testing.T) {
		resp, err := f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{
			TenantID: "acme", Slug: "consultation", Start: "2026-06-01T09:30:00Z", End: "2026-06-30T00:00:00Z",
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{
			TenantID: "acme", Slug: "consultation", Start: "2026-06-05", End: "2026-06-01",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{
			TenantID: "acme", Slug: "consultation", Start: "yesterday",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := f.svc.ListEventBookings(ctx, &models.ListEventBookingsRequest{TenantID: "globex", Slug: "consultation"})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestGetByManagementToken(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	booking := f.book(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), domain.StatusConfirmed)

	resp, err := f.svc.GetByManagementToken(ctx, booking.ManagementToken)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, resp.ID)
	assert.Equal(t, "consultation", resp.EventSlug)
	assert.Equal(t, "Consultation", resp.EventTitle)
	assert.Equal(t, "CONFIRMED", resp.Status)

	_, err = f.svc.GetByManagementToken(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.GetByManagementToken(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
