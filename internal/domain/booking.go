package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking бронирование слота события
type Booking struct {
	ID              int64
	EventID         int64
	StartTime       time.Time // UTC, идентификатор слота
	EndTime         time.Time // UTC
	CustomerName    string
	CustomerEmail   string
	Notes           *string
	Status          BookingStatus
	LabelID         *int64
	Token           *string // токен приглашения (RESTRICTED события)
	ManagementToken string  // секрет для самостоятельной отмены/переноса
	Location        *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive бронь занимает место в слоте
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingsFilter фильтр бронирований события
type BookingsFilter struct {
	EventID          int64
	From             *time.Time // start_time >= From
	To               *time.Time // start_time < To
	IncludeCancelled bool
}
