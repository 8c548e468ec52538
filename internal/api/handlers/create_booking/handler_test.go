package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/{tenant}/events/{slug}/book", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/acme/events/consultation/book", strings.NewReader(body)))
	return w
}

const validBody = `{"date":"2026-06-01","time":"10:00","name":"Ann","email":"ann@example.com","token":"ABCD2345"}`

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              7,
		EventSlug:       "consultation",
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		Status:          "CONFIRMED",
		ManagementToken: "3f1c9a9e-8d7f-4b7a-9a43-1e2f3a4b5c6d",
		CreatedAt:       start.Add(-time.Hour),
	}}

	w := serve(uc, validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "acme", uc.got.TenantID)
	assert.Equal(t, "10:00", uc.got.Time)
	require.NotNil(t, uc.got.Token)
	assert.Equal(t, "ABCD2345", *uc.got.Token)
	assert.Contains(t, w.Body.String(), `"management_token":"3f1c9a9e-8d7f-4b7a-9a43-1e2f3a4b5c6d"`)
	assert.Contains(t, w.Body.String(), `"start_time":"2026-06-01T08:00:00Z"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{createBooking.ErrEventNotFound, http.StatusNotFound},
		{createBooking.ErrEventClosed, http.StatusForbidden},
		{createBooking.ErrAccessDenied, http.StatusForbidden},
		{createBooking.ErrInvalidToken, http.StatusForbidden},
		{createBooking.ErrTokenAlreadyUsed, http.StatusConflict},
		{createBooking.ErrSlotFull, http.StatusConflict},
		{createBooking.ErrSlotBusy, http.StatusConflict},
		{createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createBooking.ErrOutsideNotice, http.StatusBadRequest},
		{fmt.Errorf("%w: email", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(&stubUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	for name, body := range map[string]string{
		"empty body":   ``,
		"broken json":  `{"date":`,
		"bad date":     `{"date":"June 1","time":"10:00"}`,
		"missing time": `{"date":"2026-06-01"}`,
	} {
		t.Run(name, func(t *testing.T) {
			uc := &stubUseCase{}
			w := serve(uc, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.got)
		})
	}
}
