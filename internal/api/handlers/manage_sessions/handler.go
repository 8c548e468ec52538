package manage_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgEventNotFound    = "событие не найдено"
	msgSessionNotFound  = "сессия не найдена"
	msgSessionExists    = "сессия с таким временем начала уже существует"
	msgNotManualEvent   = "сессии доступны только для событий с ручным расписанием"
	msgInvalidDate      = "некорректная дата или диапазон дат"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/{tenant}/events/{slug}/sessions?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	req := &models.ListSessionsRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}

	result, err := h.service.List(r.Context(), vars["tenant"], vars["slug"], req)
	if err != nil {
		h.respondError(w, "GET /admin/{tenant}/events/{slug}/sessions", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/{tenant}/events/{slug}/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/{tenant}/events/{slug}/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), vars["tenant"], vars["slug"], &req)
	if err != nil {
		h.respondError(w, "POST /admin/{tenant}/events/{slug}/sessions", err)
		return
	}

	h.logger.Info("POST /admin/{tenant}/events/{slug}/sessions - Session created: session_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/{tenant}/events/{slug}/sessions/{sessionId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/{tenant}/events/{slug}/sessions/{sessionId} - Invalid session ID: %s", vars["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req models.UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/{tenant}/events/{slug}/sessions/{sessionId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), vars["tenant"], vars["slug"], sessionID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/{tenant}/events/{slug}/sessions/{sessionId}", err)
		return
	}

	h.logger.Info("PUT /admin/{tenant}/events/{slug}/sessions/{sessionId} - Session updated: session_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/{tenant}/events/{slug}/sessions/{sessionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/{tenant}/events/{slug}/sessions/{sessionId} - Invalid session ID: %s", vars["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	if err := h.service.Delete(r.Context(), vars["tenant"], vars["slug"], sessionID); err != nil {
		h.respondError(w, "DELETE /admin/{tenant}/events/{slug}/sessions/{sessionId}", err)
		return
	}

	h.logger.Info("DELETE /admin/{tenant}/events/{slug}/sessions/{sessionId} - Session deleted: session_id=%d", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, sessions.ErrEventNotFound):
		h.logger.Warn("%s - Event not found", route)
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found", route)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, sessions.ErrSessionAlreadyExists):
		h.logger.Warn("%s - Session already exists", route)
		handlers.RespondConflict(w, msgSessionExists)

	case errors.Is(err, sessions.ErrNotManualEvent):
		h.logger.Warn("%s - Event is not manual", route)
		handlers.RespondConflict(w, msgNotManualEvent)

	case errors.Is(err, sessions.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, sessions.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
