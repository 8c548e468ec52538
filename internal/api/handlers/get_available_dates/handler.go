package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
)

const (
	msgMissingRange  = "параметры start и end обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEventNotFound = "событие не найдено"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{tenant}/events/{slug}/dates
// Query params: start, end (required, YYYY-MM-DD, inclusive)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, slug := vars["tenant"], vars["slug"]

	startStr, endStr := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /{tenant}/events/{slug}/dates - Missing range")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, slug, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /{tenant}/events/{slug}/dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrEventNotFound):
			h.logger.Warn("GET /{tenant}/events/{slug}/dates - Event not found: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /{tenant}/events/{slug}/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /{tenant}/events/{slug}/dates - Failed to get dates: tenant=%s, slug=%s, error=%v",
				tenantID, slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /{tenant}/events/{slug}/dates - Dates retrieved successfully: tenant=%s, slug=%s, dates_count=%d",
		tenantID, slug, len(result.Dates))
	w.Header().Set(TimezoneHeader, result.Timezone)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
