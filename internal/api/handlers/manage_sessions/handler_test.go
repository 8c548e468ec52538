package manage_sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func setup(t *testing.T) *mux.Router {
	t.Helper()

	store := memstore.New()
	for slug, schedule := range map[string]domain.ScheduleType{
		"workshop":     domain.ScheduleManual,
		"consultation": domain.ScheduleRecurring,
	} {
		_, err := store.Events().Create(context.Background(), &domain.Event{
			TenantID:        "acme",
			Slug:            slug,
			Title:           slug,
			Timezone:        "UTC",
			ScheduleType:    schedule,
			AccessMode:      domain.AccessOpen,
			DurationMin:     60,
			IntervalMin:     60,
			MaxParticipants: 10,
			Config:          domain.WeeklyConfig{},
		})
		require.NoError(t, err)
	}

	svc := sessions.NewService(store.Events(), store.Sessions(), &memstore.Cache{}, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	base := "/admin/{tenant}/events/{slug}/sessions"
	r.HandleFunc(base, h.List).Methods(http.MethodGet)
	r.HandleFunc(base, h.Create).Methods(http.MethodPost)
	r.HandleFunc(base+"/{sessionId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc(base+"/{sessionId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

const sessionBody = `{"start_time":"2026-11-02T10:00:00Z","end_time":"2026-11-02T12:00:00Z","max_participants":5}`

func TestSessionLifecycle(t *testing.T) {
	r := setup(t)
	base := "/admin/acme/events/workshop/sessions"

	w := do(r, http.MethodPost, base, sessionBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, base, sessionBody).Code)

	item := fmt.Sprintf("%s/%d", base, created.ID)
	w = do(r, http.MethodPut, item, `{"host_name":"Anna"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"host_name":"Anna"`)

	w = do(r, http.MethodGet, base+"?start=2026-11-01&end=2026-11-30", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"max_participants":5`)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, item, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, item, "").Code)
}

func TestSessionErrors(t *testing.T) {
	r := setup(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"recurring event", http.MethodPost, "/admin/acme/events/consultation/sessions", sessionBody, http.StatusConflict},
		{"end before start", http.MethodPost, "/admin/acme/events/workshop/sessions",
			`{"start_time":"2026-11-02T12:00:00Z","end_time":"2026-11-02T10:00:00Z"}`, http.StatusBadRequest},
		{"bad session id", http.MethodPut, "/admin/acme/events/workshop/sessions/abc", `{}`, http.StatusBadRequest},
		{"unknown session", http.MethodPut, "/admin/acme/events/workshop/sessions/999", `{"host_name":"x"}`, http.StatusNotFound},
		{"unknown event", http.MethodGet, "/admin/acme/events/nope/sessions?start=2026-11-01&end=2026-11-30", "", http.StatusNotFound},
		{"bad range", http.MethodGet, "/admin/acme/events/workshop/sessions?start=x&end=2026-11-30", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(r, tt.method, tt.target, tt.body).Code)
		})
	}
}
