package manage_overrides

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/overrides"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func setup(t *testing.T) (*mux.Router, *memstore.Cache) {
	t.Helper()

	store := memstore.New()
	_, err := store.Events().Create(context.Background(), &domain.Event{
		TenantID:        "acme",
		Slug:            "consultation",
		Title:           "Consultation",
		Timezone:        "UTC",
		ScheduleType:    domain.ScheduleRecurring,
		AccessMode:      domain.AccessOpen,
		DurationMin:     30,
		IntervalMin:     30,
		MaxParticipants: 1,
		Config:          domain.WeeklyConfig{},
	})
	require.NoError(t, err)

	cache := &memstore.Cache{}
	svc := overrides.NewService(store.Events(), store.Overrides(), cache, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	base := "/admin/{tenant}/events/{slug}/overrides"
	r.HandleFunc(base, h.List).Methods(http.MethodGet)
	r.HandleFunc(base, h.Upsert).Methods(http.MethodPost)
	r.HandleFunc(base+"/{date}", h.Delete).Methods(http.MethodDelete)
	return r, cache
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestOverrideLifecycle(t *testing.T) {
	r, cache := setup(t)
	base := "/admin/acme/events/consultation/overrides"

	w := do(r, http.MethodPost, base, `{"date":"2026-12-24","is_unavailable":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"date":"2026-12-24"`)
	assert.Len(t, cache.InvalidatedDates(), 1)

	w = do(r, http.MethodGet, base+"?start=2026-12-01&end=2026-12-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_unavailable":true`)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, base+"/2026-12-24", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, base+"/2026-12-24", "").Code)
}

func TestOverrideErrors(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"bad body", http.MethodPost, "/admin/acme/events/consultation/overrides", `[`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/admin/acme/events/consultation/overrides", `{"date":"24.12.2026"}`, http.StatusBadRequest},
		{"negative capacity", http.MethodPost, "/admin/acme/events/consultation/overrides", `{"date":"2026-12-24","override_max_participants":-1}`, http.StatusBadRequest},
		{"reversed range", http.MethodGet, "/admin/acme/events/consultation/overrides?start=2026-12-31&end=2026-12-01", "", http.StatusBadRequest},
		{"unknown event", http.MethodGet, "/admin/acme/events/nope/overrides?start=2026-12-01&end=2026-12-31", "", http.StatusNotFound},
		{"other tenant", http.MethodPost, "/admin/other/events/consultation/overrides", `{"date":"2026-12-24"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(r, tt.method, tt.target, tt.body).Code)
		})
	}
}
