package manage_events

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

const (
	msgNotFound      = "событие не найдено"
	msgAlreadyExists = "событие с таким slug уже существует"
)

// Handler администрирование событий тенанта
type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/{tenant}/events
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenant"]

	result, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.respondError(w, "GET /admin/{tenant}/events", err)
		return
	}

	h.logger.Info("GET /admin/{tenant}/events - Events retrieved: tenant=%s, count=%d", tenantID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/{tenant}/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenant"]

	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/{tenant}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), tenantID, &req)
	if err != nil {
		h.respondError(w, "POST /admin/{tenant}/events", err)
		return
	}

	h.logger.Info("POST /admin/{tenant}/events - Event created: tenant=%s, event_id=%d", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/admin/{tenant}/events/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.service.Get(r.Context(), vars["tenant"], vars["slug"])
	if err != nil {
		h.respondError(w, "GET /admin/{tenant}/events/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/admin/{tenant}/events/{slug}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req models.UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/{tenant}/events/{slug} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), vars["tenant"], vars["slug"], &req)
	if err != nil {
		h.respondError(w, "PUT /admin/{tenant}/events/{slug}", err)
		return
	}

	h.logger.Info("PUT /admin/{tenant}/events/{slug} - Event updated: event_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/{tenant}/events/{slug}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.service.Delete(r.Context(), vars["tenant"], vars["slug"]); err != nil {
		h.respondError(w, "DELETE /admin/{tenant}/events/{slug}", err)
		return
	}

	h.logger.Info("DELETE /admin/{tenant}/events/{slug} - Event deleted: tenant=%s, slug=%s", vars["tenant"], vars["slug"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, events.ErrEventNotFound):
		h.logger.Warn("%s - Event not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, events.ErrEventAlreadyExists):
		h.logger.Warn("%s - Event already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, events.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
