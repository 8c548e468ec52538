package notifications

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventType тип сообщения о бронировании
type EventType string

const (
	BookingConfirmed   EventType = "booking.confirmed"
	BookingCancelled   EventType = "booking.cancelled"
	BookingRescheduled EventType = "booking.rescheduled"
)

// BookingEvent сообщение для воркера рассылок
type BookingEvent struct {
	Type            EventType  `json:"type"`
	BookingID       int64      `json:"booking_id"`
	EventID         int64      `json:"event_id"`
	TenantID        string     `json:"tenant_id"`
	EventSlug       string     `json:"event_slug"`
	EventTitle      string     `json:"event_title"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	PreviousStart   *time.Time `json:"previous_start,omitempty"`
	Location        *string    `json:"location,omitempty"`
	ManagementToken string     `json:"management_token"`
	OccurredAt      time.Time  `json:"occurred_at"`
}

// NewBookingEvent собирает сообщение из брони и её события
func NewBookingEvent(t EventType, event *domain.Event, booking *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:            t,
		BookingID:       booking.ID,
		EventID:         event.ID,
		TenantID:        event.TenantID,
		EventSlug:       event.Slug,
		EventTitle:      event.Title,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		StartTime:       booking.StartTime.UTC(),
		EndTime:         booking.EndTime.UTC(),
		Location:        booking.Location,
		ManagementToken: booking.ManagementToken,
		OccurredAt:      occurredAt.UTC(),
	}
}
