package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.EventSession) (*domain.EventSession, error)
	GetByID(ctx context.Context, eventID, id int64) (*domain.EventSession, error)
	ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.EventSession, error)
	Update(ctx context.Context, s *domain.EventSession) (*domain.EventSession, error)
	Delete(ctx context.Context, eventID, id int64) error
}

// SlotsCache кэш слотов
type SlotsCache interface {
	InvalidateDate(ctx context.Context, eventID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
