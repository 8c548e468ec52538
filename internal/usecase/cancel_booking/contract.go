package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByManagementToken(ctx context.Context, token string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
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
