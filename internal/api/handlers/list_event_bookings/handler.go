package list_event_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidRange  = "некорректный диапазон дат"
	msgEventNotFound = "событие не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/{tenant}/events/{slug}/bookings
// Query params: start, end (RFC3339 или YYYY-MM-DD), include_cancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, slug := vars["tenant"], vars["slug"]
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(tenantID, slug, query.Get("start"), query.Get("end"), query.Get("include_cancelled"))
	if err != nil {
		h.logger.Warn("GET /admin/{tenant}/events/{slug}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListEventBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrEventNotFound):
			h.logger.Warn("GET /admin/{tenant}/events/{slug}/bookings - Event not found: tenant=%s, slug=%s", tenantID, slug)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/{tenant}/events/{slug}/bookings - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/{tenant}/events/{slug}/bookings - Failed to get bookings: tenant=%s, slug=%s, error=%v",
				tenantID, slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/{tenant}/events/{slug}/bookings - Bookings retrieved successfully: tenant=%s, slug=%s, count=%d",
		tenantID, slug, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
