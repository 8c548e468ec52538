package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpsertOverrideRequest запрос на создание или замену override'а даты
type UpsertOverrideRequest struct {
	Date            string               `json:"date"` // YYYY-MM-DD
	IsUnavailable   bool                 `json:"is_unavailable"`
	Config          *domain.WeeklyConfig `json:"config,omitempty"`
	Location        *string              `json:"location,omitempty"`
	MaxParticipants *int                 `json:"override_max_participants,omitempty"`
}

// ListOverridesRequest запрос списка override'ов в диапазоне дат включительно
type ListOverridesRequest struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// Response модели

// OverrideResponse ответ с данными override'а
type OverrideResponse struct {
	ID              int64                `json:"id"`
	Date            string               `json:"date"`
	IsUnavailable   bool                 `json:"is_unavailable"`
	Config          *domain.WeeklyConfig `json:"config,omitempty"`
	Location        *string              `json:"location,omitempty"`
	MaxParticipants *int                 `json:"override_max_participants,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OverrideListResponse ответ со списком override'ов
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель для уже разобранной даты
func (r *UpsertOverrideRequest) ToDomain(eventID int64, date time.Time) *domain.Override {
	o := &domain.Override{
		EventID:         eventID,
		Date:            date,
		IsUnavailable:   r.IsUnavailable,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
	}
	if r.Config != nil {
		o.Config = *r.Config
	}
	return o
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.Override) *OverrideResponse {
	if o == nil {
		return nil
	}

	resp := &OverrideResponse{
		ID:              o.ID,
		Date:            o.Date.Format(domain.DateFormat),
		IsUnavailable:   o.IsUnavailable,
		Location:        o.Location,
		MaxParticipants: o.MaxParticipants,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.HasConfig() {
		config := o.Config
		resp.Config = &config
	}
	return resp
}

// FromDomainOverrideList конвертирует список domain моделей в DTO
func FromDomainOverrideList(overrides []*domain.Override) *OverrideListResponse {
	resp := &OverrideListResponse{
		Overrides: make([]OverrideResponse, 0, len(overrides)),
	}
	for _, o := range overrides {
		if dto := FromDomainOverride(o); dto != nil {
			resp.Overrides = append(resp.Overrides, *dto)
		}
	}
	return resp
}
