package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func utc(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts.UTC()
}

func mondayEvent(tz string) *domain.Event {
	return &domain.Event{
		ID:              1,
		TenantID:        "acme",
		Slug:            "consultation",
		Timezone:        tz,
		ScheduleType:    domain.ScheduleRecurring,
		DurationMin:     60,
		IntervalMin:     60,
		MaxParticipants: 1,
		AccessMode:      domain.AccessOpen,
		Config: domain.WeeklyConfig{
			"monday": {{Start: "09:00", End: "17:00"}},
		},
	}
}

func localTimes(t *testing.T, slots []domain.Slot, tz string) []string {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)

	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Start.In(loc).Format(domain.TimeFormat))
	}
	return result
}

func TestAvailable_MondayWindowScenario(t *testing.T) {
	event := mondayEvent("Europe/Berlin")
	in := DayInput{
		Event: event,
		Date:  date(t, "2026-06-01"),
		Now:   utc(t, "2026-05-25T00:00:00Z"),
	}

	slots, err := Available(in)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		localTimes(t, slots, event.Timezone))

	// 10:00 по Берлину = 08:00 UTC (летнее время)
	in.Bookings = []*domain.Booking{{
		ID:        10,
		EventID:   event.ID,
		StartTime: utc(t, "2026-06-01T08:00:00Z"),
		EndTime:   utc(t, "2026-06-01T09:00:00Z"),
		Status:    domain.StatusConfirmed,
	}}

	slots, err = Available(in)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"09:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		localTimes(t, slots, event.Timezone))
}

func TestAvailable_SlotsAreAscendingUTC(t *testing.T) {
	event := mondayEvent("Europe/Berlin")
	event.Config["monday"] = []domain.TimeWindow{
		{Start: "14:00", End: "16:00"},
		{Start: "09:00", End: "11:00"},
	}

	slots, err := Available(DayInput{Event: event, Date: date(t, "2026-06-01"), Now: utc(t, "2026-05-01T00:00:00Z")})
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
	for _, s := range slots {
		assert.Equal(t, time.UTC, s.Start.Location())
	}
}

func TestAvailable_CancelledBookingDoesNotOccupy(t *testing.T) {
	event := mondayEvent("UTC")
	in := DayInput{
		Event: event,
		Date:  date(t, "2026-06-01"),
		Now:   utc(t, "2026-05-01T00:00:00Z"),
		Bookings: []*domain.Booking{{
			ID:        1,
			StartTime: utc(t, "2026-06-01T09:00:00Z"),
			Status:    domain.StatusCancelled,
		}},
	}

	slots, err := Available(in)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
	assert.Equal(t, utc(t, "2026-06-01T09:00:00Z"), slots[0].Start)
}

func TestAvailable_BlackoutOverride(t *testing.T) {
	event := mondayEvent("Europe/Berlin")

	slots, err := Available(DayInput{
		Event:    event,
		Date:     date(t, "2026-06-01"),
		Override: &domain.Override{EventID: event.ID, Date: date(t, "2026-06-01"), IsUnavailable: true},
		Now:      utc(t, "2026-05-01T00:00:00Z"),
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailable_ClosedEvent(t *testing.T) {
	event := mondayEvent("UTC")
	event.AccessMode = domain.AccessClosed

	slots, err := Available(DayInput{Event: event, Date: date(t, "2026-06-01"), Now: utc(t, "2026-05-01T00:00:00Z")})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailable_InvalidTimezone(t *testing.T) {
	event := mondayEvent("Mars/Olympus")

	_, err := Available(DayInput{Event: event, Date: date(t, "2026-06-01"), Now: utc(t, "2026-05-01T00:00:00Z")})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestAvailable_ActiveRange(t *testing.T) {
	event := mondayEvent("UTC")
	event.ActiveStart = ptr.Ptr(utc(t, "2026-06-01T11:00:00Z"))
	event.ActiveEnd = ptr.Ptr(utc(t, "2026-06-01T13:00:00Z"))

	slots, err := Available(DayInput{Event: event, Date: date(t, "2026-06-01"), Now: utc(t, "2026-05-01T00:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "12:00", "13:00"}, localTimes(t, slots, "UTC"))
}

func TestAvailable_LeadTimePolicy(t *testing.T) {
	event := mondayEvent("UTC")
	event.Config["monday"] = []domain.TimeWindow{{Start: "00:00", End: "23:00"}}
	event.MinNoticeFirst = 240
	event.MinNoticeGeneral = 60

	now := utc(t, "2026-06-01T06:00:00Z")
	in := DayInput{Event: event, Date: date(t, "2026-06-01"), Now: now}

	slots, err := Available(in)
	require.NoError(t, err)
	starts := localTimes(t, slots, "UTC")

	assert.NotContains(t, starts, "08:00", "now+2h must be excluded without prior bookings")
	assert.Contains(t, starts, "10:00", "now+4h satisfies min_notice_first")
	assert.Contains(t, starts, "11:00", "now+5h must be included")

	// бронь на now+5h смягчает политику для более поздних слотов
	in.Bookings = []*domain.Booking{{ID: 1, StartTime: now.Add(5 * time.Hour), Status: domain.StatusConfirmed}}

	slots, err = Available(in)
	require.NoError(t, err)
	starts = localTimes(t, slots, "UTC")

	assert.Contains(t, starts, "12:00", "now+6h is included under the general rule")
	assert.NotContains(t, starts, "08:00", "now+2h stays excluded: no booking before it")
	assert.NotContains(t, starts, "11:00", "booked slot is full")
}

func TestAvailable_EarlierBookingRelaxesNotice(t *testing.T) {
	event := mondayEvent("UTC")
	event.Config["monday"] = []domain.TimeWindow{{Start: "00:00", End: "23:00"}}
	event.MaxParticipants = 5
	event.MinNoticeFirst = 240
	event.MinNoticeGeneral = 60

	now := utc(t, "2026-06-01T06:00:00Z")
	in := DayInput{
		Event:    event,
		Date:     date(t, "2026-06-01"),
		Now:      now,
		Bookings: []*domain.Booking{{ID: 1, StartTime: utc(t, "2026-06-01T07:00:00Z"), Status: domain.StatusConfirmed}},
	}

	slots, err := Available(in)
	require.NoError(t, err)
	starts := localTimes(t, slots, "UTC")

	// у самой ранней брони дня предшественника нет: действует min_notice_first
	assert.NotContains(t, starts, "07:00")
	assert.Contains(t, starts, "08:00")
	assert.Contains(t, starts, "09:00")
}

func TestAvailable_DSTTransition(t *testing.T) {
	event := mondayEvent("Europe/Berlin")
	now := utc(t, "2026-03-01T00:00:00Z")

	// понедельник до перехода: CET, UTC+1
	before, err := Available(DayInput{Event: event, Date: date(t, "2026-03-23"), Now: now})
	require.NoError(t, err)
	require.Len(t, before, 8)
	assert.Equal(t, utc(t, "2026-03-23T08:00:00Z"), before[0].Start)
	assert.Equal(t, utc(t, "2026-03-23T15:00:00Z"), before[7].Start)

	// понедельник после перехода: CEST, UTC+2
	after, err := Available(DayInput{Event: event, Date: date(t, "2026-03-30"), Now: now})
	require.NoError(t, err)
	require.Len(t, after, 8)
	assert.Equal(t, utc(t, "2026-03-30T07:00:00Z"), after[0].Start)

	shift := before[0].Start.Sub(before[0].Start.Truncate(24 * time.Hour))
	shiftAfter := after[0].Start.Sub(after[0].Start.Truncate(24 * time.Hour))
	assert.Equal(t, time.Hour, shift-shiftAfter)
}

func TestAvailable_ManualSessions(t *testing.T) {
	event := mondayEvent("Europe/Berlin")
	event.ScheduleType = domain.ScheduleManual
	event.MaxParticipants = 3
	event.Location = ptr.Ptr("Main hall")

	sessions := []*domain.EventSession{
		{ID: 1, StartTime: utc(t, "2026-06-01T16:00:00Z"), EndTime: utc(t, "2026-06-01T17:00:00Z"), MaxParticipants: 1, Location: ptr.Ptr("Room 2")},
		{ID: 2, StartTime: utc(t, "2026-06-01T07:00:00Z"), EndTime: utc(t, "2026-06-01T08:30:00Z")},
		// 23:30 UTC = 01:30 следующего дня по Берлину
		{ID: 3, StartTime: utc(t, "2026-06-01T23:30:00Z"), EndTime: utc(t, "2026-06-02T00:30:00Z")},
	}

	in := DayInput{
		Event:    event,
		Date:     date(t, "2026-06-01"),
		Sessions: sessions,
		Now:      utc(t, "2026-05-01T00:00:00Z"),
		Bookings: []*domain.Booking{{ID: 1, StartTime: utc(t, "2026-06-01T16:00:00Z"), Status: domain.StatusConfirmed}},
	}

	slots, err := Available(in)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, utc(t, "2026-06-01T07:00:00Z"), slots[0].Start)
	assert.Equal(t, utc(t, "2026-06-01T08:30:00Z"), slots[0].End)
	assert.Equal(t, 3, slots[0].Capacity, "session without capacity falls back to the event default")
	assert.Equal(t, "Main hall", *slots[0].Location)
	require.NotNil(t, slots[0].SessionID)
	assert.Equal(t, int64(2), *slots[0].SessionID)

	// прошедшие сессии не предлагаются
	in.Now = utc(t, "2026-06-01T10:00:00Z")
	slots, err = Available(in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAdmit(t *testing.T) {
	event := mondayEvent("UTC")
	event.MinNoticeFirst = 120
	event.MinNoticeGeneral = 120

	base := DayInput{
		Event: event,
		Date:  date(t, "2026-06-01"),
		Now:   utc(t, "2026-06-01T08:00:00Z"),
	}

	t.Run("offered slot is admitted", func(t *testing.T) {
		slot, err := Admit(base, utc(t, "2026-06-01T12:00:00Z"), 0)
		require.NoError(t, err)
		assert.Equal(t, utc(t, "2026-06-01T13:00:00Z"), slot.End)
		assert.Equal(t, 1, slot.Capacity)
	})

	t.Run("time off the grid", func(t *testing.T) {
		_, err := Admit(base, utc(t, "2026-06-01T12:30:00Z"), 0)
		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("too close to now", func(t *testing.T) {
		_, err := Admit(base, utc(t, "2026-06-01T09:00:00Z"), 0)
		assert.ErrorIs(t, err, ErrOutsideNotice)
	})

	t.Run("outside active range", func(t *testing.T) {
		in := base
		closedEvent := *event
		closedEvent.ActiveEnd = ptr.Ptr(utc(t, "2026-06-01T11:00:00Z"))
		in.Event = &closedEvent

		_, err := Admit(in, utc(t, "2026-06-01T12:00:00Z"), 0)
		assert.ErrorIs(t, err, ErrOutsideNotice)
	})

	t.Run("slot full", func(t *testing.T) {
		in := base
		in.Bookings = []*domain.Booking{{ID: 7, StartTime: utc(t, "2026-06-01T12:00:00Z"), Status: domain.StatusConfirmed}}

		_, err := Admit(in, utc(t, "2026-06-01T12:00:00Z"), 0)
		assert.ErrorIs(t, err, ErrSlotFull)

		// бронь, которая переносится, не занимает свое же место
		slot, err := Admit(in, utc(t, "2026-06-01T12:00:00Z"), 7)
		require.NoError(t, err)
		assert.Equal(t, 0, slot.Booked)
	})
}
