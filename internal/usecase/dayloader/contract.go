package dayloader

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// OverrideRepository интерфейс репозитория переопределений
type OverrideRepository interface {
	GetByEventAndDate(ctx context.Context, eventID int64, date time.Time) (*domain.Override, error)
	ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.Override, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.EventSession, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByEvent(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}
