package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgMissingToken   = "требуется авторизация"
	msgInvalidToken   = "недействительный токен"
	msgTenantMismatch = "нет доступа к данному тенанту"
)

// TenantClaims claims административного токена
type TenantClaims struct {
	TenantID string `json:"tenant"`
	jwt.RegisteredClaims
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет Bearer JWT (HS256) и сверяет claim tenant с {tenant} в пути
func Auth(secret string, logger Logger) mux.MiddlewareFunc {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingToken)
				return
			}

			claims, err := parseToken(strings.TrimPrefix(header, "Bearer "), key)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			if tenant, ok := mux.Vars(r)["tenant"]; ok && tenant != claims.TenantID {
				logger.Warn("%s %s - Tenant mismatch: token=%s, path=%s", r.Method, r.URL.Path, claims.TenantID, tenant)
				handlers.RespondForbidden(w, msgTenantMismatch)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(raw string, key []byte) (*TenantClaims, error) {
	claims := &TenantClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.TenantID == "" {
		return nil, errors.New("tenant claim is empty")
	}
	return claims, nil
}
