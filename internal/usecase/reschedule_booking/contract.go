package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByManagementToken(ctx context.Context, token string) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, start, end time.Time, location *string) error
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// SlotLocker сериализует допуск броней на один слот
type SlotLocker interface {
	Acquire(ctx context.Context, eventID int64, start time.Time) error
}

// DayLoader загружает override, сессии и брони дня
type DayLoader interface {
	Day(ctx context.Context, event *domain.Event, loc *time.Location, date, now time.Time) (availability.DayInput, error)
}

// SlotsCache сбрасывается после изменения броней дня
type SlotsCache interface {
	InvalidateDate(ctx context.Context, eventID int64, date time.Time) error
}

// Publisher отправляет события бронирования воркеру рассылок
type Publisher interface {
	Publish(ctx context.Context, event notifications.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
