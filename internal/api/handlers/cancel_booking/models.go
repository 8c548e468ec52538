package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID               int64   `json:"id"`
	Status           string  `json:"status"`
	StartTime        string  `json:"start_time"`
	CancelledAt      *string `json:"cancelled_at,omitempty"`
	AlreadyCancelled bool    `json:"already_cancelled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:               resp.ID,
		Status:           resp.Status,
		StartTime:        resp.StartTime.UTC().Format(time.RFC3339),
		AlreadyCancelled: resp.AlreadyCancelled,
	}
	if resp.CancelledAt != nil {
		out.CancelledAt = ptr.Ptr(resp.CancelledAt.UTC().Format(time.RFC3339))
	}
	return out
}
