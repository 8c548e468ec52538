package manage_overrides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/overrides"
	"github.com/m04kA/SMC-SchedulingService/internal/service/overrides/models"
)

const (
	msgEventNotFound    = "событие не найдено"
	msgOverrideNotFound = "исключение для даты не найдено"
	msgInvalidDate      = "некорректная дата или диапазон дат"
)

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/{tenant}/events/{slug}/overrides?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	req := &models.ListOverridesRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}

	result, err := h.service.List(r.Context(), vars["tenant"], vars["slug"], req)
	if err != nil {
		h.respondError(w, "GET /admin/{tenant}/events/{slug}/overrides", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upsert POST /api/v1/admin/{tenant}/events/{slug}/overrides
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req models.UpsertOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/{tenant}/events/{slug}/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), vars["tenant"], vars["slug"], &req)
	if err != nil {
		h.respondError(w, "POST /admin/{tenant}/events/{slug}/overrides", err)
		return
	}

	h.logger.Info("POST /admin/{tenant}/events/{slug}/overrides - Override saved: slug=%s, date=%s", vars["slug"], result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/{tenant}/events/{slug}/overrides/{date}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.Delete(r.Context(), vars["tenant"], vars["slug"], vars["date"]); err != nil {
		h.respondError(w, "DELETE /admin/{tenant}/events/{slug}/overrides/{date}", err)
		return
	}

	h.logger.Info("DELETE /admin/{tenant}/events/{slug}/overrides/{date} - Override deleted: slug=%s, date=%s", vars["slug"], vars["date"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, overrides.ErrEventNotFound):
		h.logger.Warn("%s - Event not found", route)
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, overrides.ErrOverrideNotFound):
		h.logger.Warn("%s - Override not found", route)
		handlers.RespondNotFound(w, msgOverrideNotFound)

	case errors.Is(err, overrides.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, overrides.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
