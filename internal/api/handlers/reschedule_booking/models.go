package reschedule_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

var errMissingTime = errors.New("time is required")

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date string `json:"date"` // "2026-06-01"
	Time string `json:"time"` // "10:00" или RFC3339
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID            int64   `json:"id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	PreviousStart string  `json:"previous_start"`
	Location      *string `json:"location,omitempty"`
	Status        string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(token string) (*rescheduleBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	if r.Time == "" {
		return nil, errMissingTime
	}

	return &rescheduleBooking.Request{
		ManagementToken: token,
		Date:            date,
		Time:            r.Time,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:            resp.ID,
		StartTime:     resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:       resp.EndTime.UTC().Format(time.RFC3339),
		PreviousStart: resp.PreviousStart.UTC().Format(time.RFC3339),
		Location:      resp.Location,
		Status:        resp.Status,
	}
}
