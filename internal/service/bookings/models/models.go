package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListEventBookingsRequest запрос на получение бронирований события
// Start/End: RFC3339 или YYYY-MM-DD (дата End включительно), UTC
type ListEventBookingsRequest struct {
	TenantID         string
	Slug             string
	Start            string
	End              string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListEventBookingsRequest) ToDomainFilter(eventID int64) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		EventID:          eventID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Start != "" {
		from, err := parseBound(r.Start, false)
		if err != nil {
			return filter, fmt.Errorf("start: %w", err)
		}
		filter.From = &from
	}
	if r.End != "" {
		to, err := parseBound(r.End, true)
		if err != nil {
			return filter, fmt.Errorf("end: %w", err)
		}
		filter.To = &to
	}

	return filter, nil
}

// parseBound дата без времени в конце диапазона включает весь день
func parseBound(value string, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	date, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if isEnd {
		return date.AddDate(0, 0, 1), nil
	}
	return date, nil
}

// Response модели

// BookingResponse ответ с данными бронирования для администратора
type BookingResponse struct {
	ID            int64      `json:"id"`
	EventID       int64      `json:"event_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Notes         *string    `json:"notes,omitempty"`
	Status        string     `json:"status"`
	LabelID       *int64     `json:"label_id,omitempty"`
	Token         *string    `json:"token,omitempty"`
	Location      *string    `json:"location,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ManagedBookingResponse бронирование для страницы самостоятельного управления
type ManagedBookingResponse struct {
	ID            int64      `json:"id"`
	EventSlug     string     `json:"event_slug"`
	EventTitle    string     `json:"event_title"`
	Timezone      string     `json:"timezone"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Status        string     `json:"status"`
	Location      *string    `json:"location,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		EventID:       b.EventID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Notes:         b.Notes,
		Status:        string(b.Status),
		LabelID:       b.LabelID,
		Token:         b.Token,
		Location:      b.Location,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainManagedBooking собирает ответ из брони и ее события
func FromDomainManagedBooking(b *domain.Booking, e *domain.Event) *ManagedBookingResponse {
	return &ManagedBookingResponse{
		ID:            b.ID,
		EventSlug:     e.Slug,
		EventTitle:    e.Title,
		Timezone:      e.Timezone,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Status:        string(b.Status),
		Location:      b.Location,
		CancelledAt:   b.CancelledAt,
	}
}
