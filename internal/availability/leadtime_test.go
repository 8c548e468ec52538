package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestEffectiveNotice(t *testing.T) {
	policy := NoticePolicy{General: 60, First: 240}
	candidate := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		earlier []time.Time
		want    time.Duration
	}{
		{name: "no bookings", earlier: nil, want: 240 * time.Minute},
		{name: "earlier the same day", earlier: []time.Time{candidate.Add(-3 * time.Hour)}, want: 60 * time.Minute},
		{name: "same instant", earlier: []time.Time{candidate}, want: 240 * time.Minute},
		{name: "only later", earlier: []time.Time{candidate.Add(time.Hour)}, want: 240 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.EffectiveNotice(candidate, tt.earlier))
		})
	}
}

func TestAvailable_NoticeUsesEventLocalDay(t *testing.T) {
	event := mondayEvent("Europe/Berlin")
	event.MinNoticeFirst = 240
	event.MinNoticeGeneral = 60
	event.Config["monday"] = []domain.TimeWindow{{Start: "00:00", End: "23:00"}}

	// 06:00 UTC = 08:00 по Берлину
	now := utc(t, "2026-06-01T06:00:00Z")
	in := DayInput{Event: event, Date: date(t, "2026-06-01"), Now: now}

	slots, err := Available(in)
	require.NoError(t, err)
	assert.NotContains(t, localTimes(t, slots, "Europe/Berlin"), "10:00")

	// вчерашняя бронь относится к другому локальному дню и в DayInput не попадает
	loc, err := event.TimeLocation()
	require.NoError(t, err)
	from, _ := domain.DayBounds(in.Date, loc)
	assert.Equal(t, utc(t, "2026-05-31T22:00:00Z"), from)

	// бронь раньше в тот же локальный день смягчает правило
	in.Bookings = []*domain.Booking{{ID: 1, StartTime: utc(t, "2026-05-31T23:00:00Z"), Status: domain.StatusConfirmed}}
	slots, err = Available(in)
	require.NoError(t, err)
	assert.Contains(t, localTimes(t, slots, "Europe/Berlin"), "10:00")
}
