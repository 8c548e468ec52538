package bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByManagementToken(ctx context.Context, token string) (*domain.Booking, error)
	ListByEvent(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
