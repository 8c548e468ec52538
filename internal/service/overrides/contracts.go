package overrides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
}

// OverrideRepository интерфейс репозитория override'ов
type OverrideRepository interface {
	Upsert(ctx context.Context, o *domain.Override) (*domain.Override, error)
	ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.Override, error)
	Delete(ctx context.Context, eventID int64, date time.Time) error
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
