package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

const testSecret = "test-secret"

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, tenant string, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(method, TenantClaims{
		TenantID: tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	raw, err := token.SignedString(key)
	require.NoError(t, err)
	return raw
}

func authRouter() *mux.Router {
	r := mux.NewRouter()
	admin := r.PathPrefix("/admin/{tenant}").Subrouter()
	admin.Use(Auth(testSecret, logger.NewNop()))
	admin.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestAuth(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), "acme", future), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), "acme", future), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), "acme", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"empty tenant", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), "", future), http.StatusUnauthorized},
		{"other tenant", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), "globex", future), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/acme/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			authRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
