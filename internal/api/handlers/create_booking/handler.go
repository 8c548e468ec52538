package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidDate      = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingTime      = "время начала обязательно"
	msgEventNotFound    = "событие не найдено"
	msgEventClosed      = "запись на событие закрыта"
	msgAccessDenied     = "для записи на событие нужно приглашение"
	msgInvalidToken     = "приглашение недействительно"
	msgTokenAlreadyUsed = "приглашение уже использовано"
	msgInvalidTimeSlot  = "некорректный временной слот"
	msgOutsideNotice    = "слот недоступен для бронирования в это время"
	msgSlotFull         = "в выбранном слоте нет свободных мест"
	msgSlotBusy         = "слот сейчас бронируют другие клиенты, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/{tenant}/events/{slug}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, slug := vars["tenant"], vars["slug"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /{tenant}/events/{slug}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, slug)
	if err != nil {
		h.logger.Warn("POST /{tenant}/events/{slug}/book - Failed to parse request: %v", err)
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
		case errors.Is(err, createBooking.ErrEventNotFound):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Event not found: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createBooking.ErrEventClosed):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Event closed: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondForbidden(w, msgEventClosed)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Invitation required: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createBooking.ErrInvalidToken):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Invalid invitation token: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondForbidden(w, msgInvalidToken)

		case errors.Is(err, createBooking.ErrTokenAlreadyUsed):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Invitation token already used: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondConflict(w, msgTokenAlreadyUsed)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Slot full: tenant=%s, slug=%s, date=%s, time=%s",
				tenantID, slug, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrSlotBusy):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Slot contended: tenant=%s, slug=%s, date=%s, time=%s",
				tenantID, slug, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotBusy)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Invalid time slot: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrOutsideNotice):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Outside notice: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideNotice)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /{tenant}/events/{slug}/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /{tenant}/events/{slug}/book - Failed to create booking: tenant=%s, slug=%s, error=%v",
				tenantID, slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /{tenant}/events/{slug}/book - Booking created successfully: booking_id=%d, tenant=%s, slug=%s",
		result.ID, tenantID, slug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
