package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/{tenant}/events/{slug}/slots", NewHandler(uc, logger.NewNop()).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	start := time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Timezone: "Europe/Berlin",
		Slots: []getAvailableSlots.Slot{
			{Start: start, End: start.Add(30 * time.Minute), AvailableSpots: 1, TotalSpots: 2},
		},
	}}

	w := serve(uc, "/api/v1/acme/events/consultation/slots?date=2026-06-01")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", uc.got.TenantID)
	assert.Equal(t, "consultation", uc.got.Slug)
	assert.JSONEq(t, `{
		"date": "2026-06-01",
		"timezone": "Europe/Berlin",
		"slots": ["2026-06-01T07:00:00Z"],
		"details": [{"start": "2026-06-01T07:00:00Z", "end": "2026-06-01T07:30:00Z", "available_spots": 1, "total_spots": 2}]
	}`, w.Body.String())
}

func TestHandle_SlotsArePlainInstants(t *testing.T) {
	first := time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
		Slots: []getAvailableSlots.Slot{
			{Start: first, End: first.Add(time.Hour), AvailableSpots: 1, TotalSpots: 1},
			{Start: first.Add(time.Hour), End: first.Add(2 * time.Hour), AvailableSpots: 3, TotalSpots: 3},
		},
	}}

	w := serve(uc, "/api/v1/acme/events/consultation/slots?date=2026-06-01")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"2026-06-01T07:00:00Z", "2026-06-01T08:00:00Z"}, body.Slots)
}

func TestHandle_EmptyDayReturnsEmptyArrays(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}}

	w := serve(uc, "/api/v1/acme/events/consultation/slots?date=2026-06-01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
	assert.Contains(t, w.Body.String(), `"details":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"missing date", "/api/v1/acme/events/x/slots", nil, http.StatusBadRequest},
		{"malformed date", "/api/v1/acme/events/x/slots?date=01-06-2026", nil, http.StatusBadRequest},
		{"unknown event", "/api/v1/acme/events/x/slots?date=2026-06-01", getAvailableSlots.ErrEventNotFound, http.StatusNotFound},
		{"internal", "/api/v1/acme/events/x/slots?date=2026-06-01", fmt.Errorf("%w: boom", getAvailableSlots.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
