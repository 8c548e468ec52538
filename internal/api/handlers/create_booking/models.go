package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

var errMissingTime = errors.New("time is required")

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date    string  `json:"date"` // "2026-06-01"
	Time    string  `json:"time"` // "10:00" или RFC3339
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Notes   *string `json:"notes,omitempty"`
	Token   *string `json:"token,omitempty"`
	LabelID *int64  `json:"label_id,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	EventSlug       string  `json:"event_slug"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Location        *string `json:"location,omitempty"`
	Status          string  `json:"status"`
	ManagementToken string  `json:"management_token"`
	CreatedAt       string  `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID, slug string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	if r.Time == "" {
		return nil, errMissingTime
	}

	return &createBooking.Request{
		TenantID: tenantID,
		Slug:     slug,
		Date:     date,
		Time:     r.Time,
		Name:     r.Name,
		Email:    r.Email,
		Notes:    r.Notes,
		Token:    r.Token,
		LabelID:  r.LabelID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		EventSlug:       resp.EventSlug,
		StartTime:       resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:         resp.EndTime.UTC().Format(time.RFC3339),
		Location:        resp.Location,
		Status:          resp.Status,
		ManagementToken: resp.ManagementToken,
		CreatedAt:       resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
