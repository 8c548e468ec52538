package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Request модели

// CreateSessionRequest запрос на создание сессии
type CreateSessionRequest struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxParticipants *int      `json:"max_participants,omitempty"` // nil - вместимость события
	Location        *string   `json:"location,omitempty"`
	HostName        *string   `json:"host_name,omitempty"`
}

// UpdateSessionRequest запрос на обновление сессии
// Все поля опциональны - обновляются только переданные значения
type UpdateSessionRequest struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
	Location        *string    `json:"location,omitempty"`
	HostName        *string    `json:"host_name,omitempty"`
}

// ListSessionsRequest запрос списка сессий за дни [Start, End] в часовом поясе события
type ListSessionsRequest struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              int64     `json:"id"`
	EventID         int64     `json:"event_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	Location        *string   `json:"location,omitempty"`
	HostName        *string   `json:"host_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель
func (r *CreateSessionRequest) ToDomain(eventID int64) *domain.EventSession {
	return &domain.EventSession{
		EventID:         eventID,
		StartTime:       r.StartTime.UTC(),
		EndTime:         r.EndTime.UTC(),
		MaxParticipants: ptr.Deref(r.MaxParticipants, 0),
		Location:        r.Location,
		HostName:        r.HostName,
	}
}

// ApplyTo переносит переданные поля в сессию
func (r *UpdateSessionRequest) ApplyTo(s *domain.EventSession) {
	if r.StartTime != nil {
		s.StartTime = r.StartTime.UTC()
	}
	if r.EndTime != nil {
		s.EndTime = r.EndTime.UTC()
	}
	if r.MaxParticipants != nil {
		s.MaxParticipants = *r.MaxParticipants
	}
	if r.Location != nil {
		s.Location = r.Location
	}
	if r.HostName != nil {
		s.HostName = r.HostName
	}
}

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.EventSession) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:        s.ID,
		EventID:   s.EventID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Location:  s.Location,
		HostName:  s.HostName,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.MaxParticipants > 0 {
		resp.MaxParticipants = ptr.Ptr(s.MaxParticipants)
	}
	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.EventSession) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		if dto := FromDomainSession(s); dto != nil {
			resp.Sessions = append(resp.Sessions, *dto)
		}
	}
	return resp
}
