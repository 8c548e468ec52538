package manage_invitees

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/invitees"
	"github.com/m04kA/SMC-SchedulingService/internal/service/invitees/models"
)

const (
	msgEventNotFound   = "событие не найдено"
	msgInviteeNotFound = "приглашение не найдено"
)

// Handler выдача и отзыв приглашений для событий с ограниченным доступом
type Handler struct {
	service InviteeService
	logger  Logger
}

func NewHandler(service InviteeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/{tenant}/events/{slug}/invitees
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.service.List(r.Context(), vars["tenant"], vars["slug"])
	if err != nil {
		h.respondError(w, "GET /admin/{tenant}/events/{slug}/invitees", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/{tenant}/events/{slug}/invitees
// Тело запроса необязательно
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req models.CreateInviteeRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/{tenant}/events/{slug}/invitees - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Create(r.Context(), vars["tenant"], vars["slug"], &req)
	if err != nil {
		h.respondError(w, "POST /admin/{tenant}/events/{slug}/invitees", err)
		return
	}

	h.logger.Info("POST /admin/{tenant}/events/{slug}/invitees - Invitee created: invitee_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateStatus PATCH /api/v1/admin/{tenant}/events/{slug}/invitees/{token}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req models.UpdateInviteeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/{tenant}/events/{slug}/invitees/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), vars["tenant"], vars["slug"], vars["token"], &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/{tenant}/events/{slug}/invitees/{token}", err)
		return
	}

	h.logger.Info("PATCH /admin/{tenant}/events/{slug}/invitees/{token} - Invitee status changed: invitee_id=%d, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, invitees.ErrEventNotFound):
		h.logger.Warn("%s - Event not found", route)
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, invitees.ErrInviteeNotFound):
		h.logger.Warn("%s - Invitee not found", route)
		handlers.RespondNotFound(w, msgInviteeNotFound)

	case errors.Is(err, invitees.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
