package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidToken = "некорректный токен управления"
	msgNotFound     = "бронирование не найдено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/manage/{managementToken}/cancel
// Повторная отмена возвращает 200 с already_cancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["managementToken"]

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{ManagementToken: token})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/manage/{token}/cancel - Malformed token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/manage/{token}/cancel - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /bookings/manage/{token}/cancel - Failed to cancel booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/manage/{token}/cancel - Booking cancelled: booking_id=%d, already_cancelled=%t",
		result.ID, result.AlreadyCancelled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
