package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEventNotFound = "событие не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{tenant}/events/{slug}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, slug := vars["tenant"], vars["slug"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /{tenant}/events/{slug}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, slug, dateStr)
	if err != nil {
		h.logger.Warn("GET /{tenant}/events/{slug}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventNotFound):
			h.logger.Warn("GET /{tenant}/events/{slug}/slots - Event not found: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /{tenant}/events/{slug}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /{tenant}/events/{slug}/slots - Failed to get slots: tenant=%s, slug=%s, error=%v",
				tenantID, slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /{tenant}/events/{slug}/slots - Slots retrieved successfully: tenant=%s, slug=%s, date=%s, slots_count=%d",
		tenantID, slug, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
