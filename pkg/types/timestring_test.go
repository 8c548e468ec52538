package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "midnight", input: "00:00"},
		{name: "hour without leading zero", input: "9:00", wantErr: true},
		{name: "24:00 is not a wall time", input: "24:00", wantErr: true},
		{name: "minutes overflow", input: "10:60", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)
	assert.True(t, ts.IsBefore(next))
	assert.True(t, next.IsAfter(ts))

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 17*60+5, TimeString("17:05").Minutes())
	assert.Equal(t, 17, TimeString("17:05").Hour())
	assert.Equal(t, 5, TimeString("17:05").Minute())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:15"}`), &payload))
	assert.Equal(t, TimeString("08:15"), payload.Start)

	err := json.Unmarshal([]byte(`{"start":"8:15"}`), &payload)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("07:05")))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 18, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
