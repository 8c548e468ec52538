package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime     = "время начала обязательно"
	msgInvalidToken    = "некорректный токен управления"
	msgNotFound        = "бронирование не найдено"
	msgCancelled       = "бронирование отменено"
	msgEventClosed     = "запись на событие закрыта"
	msgInvalidTimeSlot = "некорректный временной слот"
	msgOutsideNotice   = "слот недоступен для бронирования в это время"
	msgSlotFull        = "в выбранном слоте нет свободных мест"
	msgSlotBusy        = "слот сейчас бронируют другие клиенты, повторите попытку"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/manage/{managementToken}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["managementToken"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/manage/{token}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(token)
	if err != nil {
		h.logger.Warn("POST /bookings/manage/{token}/reschedule - Failed to parse request: %v", err)
		if errors.Is(err, errMissingTime) {
			handlers.RespondBadRequest(w, msgMissingTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingCancelled):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Booking is cancelled")
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Slot full: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrSlotBusy):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Slot contended: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotBusy)

		case errors.Is(err, rescheduleBooking.ErrEventClosed):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Event closed")
			handlers.RespondForbidden(w, msgEventClosed)

		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Invalid time slot: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleBooking.ErrOutsideNotice):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Outside notice: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideNotice)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/manage/{token}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("POST /bookings/manage/{token}/reschedule - Failed to reschedule booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/manage/{token}/reschedule - Booking rescheduled: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
