package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
}

// DayLoader загружает override, сессии и брони дня
type DayLoader interface {
	Day(ctx context.Context, event *domain.Event, loc *time.Location, date, now time.Time) (availability.DayInput, error)
}

// SlotsCache кэш списка слотов на день (только чтение, короткий TTL)
type SlotsCache interface {
	Get(ctx context.Context, eventID int64, date time.Time) ([]domain.Slot, error)
	Set(ctx context.Context, eventID int64, date time.Time, slots []domain.Slot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
