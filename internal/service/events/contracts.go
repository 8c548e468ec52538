package events

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// SlotsCache кэш слотов: после изменения события сбрасываются все его дни
type SlotsCache interface {
	InvalidateEvent(ctx context.Context, eventID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
