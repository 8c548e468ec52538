package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyConfig_Validate(t *testing.T) {
	valid := WeeklyConfig{
		"monday": {{Start: "09:00", End: "17:00"}},
		"friday": {{Start: "10:00", End: "12:00"}, {Start: "13:00", End: "15:00"}},
	}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, WeeklyConfig{"Monday": {{Start: "09:00", End: "10:00"}}}.Validate(), ErrInvalidWeekday)
	assert.ErrorIs(t, WeeklyConfig{"monday": {{Start: "10:00", End: "09:00"}}}.Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, WeeklyConfig{"monday": {{Start: "9:00", End: "10:00"}}}.Validate(), ErrInvalidWindow)

	zero := 0
	assert.ErrorIs(t, WeeklyConfig{"monday": {{Start: "09:00", End: "10:00", MaxParticipants: &zero}}}.Validate(), ErrInvalidWindow)
}

func TestWeeklyConfig_ScanValue(t *testing.T) {
	cfg := WeeklyConfig{"sunday": {{Start: "08:00", End: "09:30"}}}

	value, err := cfg.Value()
	require.NoError(t, err)
	raw, ok := value.(string)
	require.True(t, ok)

	var scanned WeeklyConfig
	require.NoError(t, scanned.Scan([]byte(raw)))

	windows, ok := scanned.Windows(time.Sunday)
	require.True(t, ok)
	assert.Equal(t, cfg["sunday"], windows)

	_, ok = scanned.Windows(time.Monday)
	assert.False(t, ok)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestEvent_IsWithinActiveRange(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	event := &Event{ActiveStart: &start, ActiveEnd: &end}

	assert.True(t, event.IsWithinActiveRange(start))
	assert.True(t, event.IsWithinActiveRange(end))
	assert.False(t, event.IsWithinActiveRange(start.Add(-time.Minute)))
	assert.False(t, event.IsWithinActiveRange(end.Add(time.Minute)))
	assert.True(t, (&Event{}).IsWithinActiveRange(start))
}

func TestDayBounds(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	day, err := ParseDate("2026-06-01")
	require.NoError(t, err)

	from, to := DayBounds(day, berlin)
	assert.Equal(t, time.Date(2026, 5, 31, 22, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC), to)

	assert.Equal(t, day, LocalDate(time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC), berlin))
}
