package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Request модели

// CreateEventRequest запрос на создание события.
// Незаполненные числовые поля получают значения по умолчанию.
type CreateEventRequest struct {
	Slug             string              `json:"slug"`
	Title            string              `json:"title"`
	Timezone         string              `json:"timezone"`
	ScheduleType     string              `json:"schedule_type"`
	DurationMin      *int                `json:"duration_min,omitempty"`
	IntervalMin      *int                `json:"interval_min,omitempty"`
	MaxParticipants  *int                `json:"max_participants,omitempty"`
	MinNoticeGeneral *int                `json:"min_notice_general,omitempty"`
	MinNoticeFirst   *int                `json:"min_notice_first,omitempty"`
	ActiveStart      *time.Time          `json:"active_start,omitempty"`
	ActiveEnd        *time.Time          `json:"active_end,omitempty"`
	AccessMode       string              `json:"access_mode"`
	Location         *string             `json:"location,omitempty"`
	Config           domain.WeeklyConfig `json:"config"`
}

// UpdateEventRequest запрос на обновление события
// Все поля опциональны - обновляются только переданные значения
type UpdateEventRequest struct {
	Title            *string              `json:"title,omitempty"`
	Timezone         *string              `json:"timezone,omitempty"`
	ScheduleType     *string              `json:"schedule_type,omitempty"`
	DurationMin      *int                 `json:"duration_min,omitempty"`
	IntervalMin      *int                 `json:"interval_min,omitempty"`
	MaxParticipants  *int                 `json:"max_participants,omitempty"`
	MinNoticeGeneral *int                 `json:"min_notice_general,omitempty"`
	MinNoticeFirst   *int                 `json:"min_notice_first,omitempty"`
	ActiveStart      *time.Time           `json:"active_start,omitempty"`
	ActiveEnd        *time.Time           `json:"active_end,omitempty"`
	ClearActiveRange bool                 `json:"clear_active_range,omitempty"`
	AccessMode       *string              `json:"access_mode,omitempty"`
	Location         *string              `json:"location,omitempty"`
	Config           *domain.WeeklyConfig `json:"config,omitempty"`
}

// Response модели

// EventResponse ответ с данными события
type EventResponse struct {
	ID               int64               `json:"id"`
	TenantID         string              `json:"tenant_id"`
	Slug             string              `json:"slug"`
	Title            string              `json:"title"`
	Timezone         string              `json:"timezone"`
	ScheduleType     string              `json:"schedule_type"`
	DurationMin      int                 `json:"duration_min"`
	IntervalMin      int                 `json:"interval_min"`
	MaxParticipants  int                 `json:"max_participants"`
	MinNoticeGeneral int                 `json:"min_notice_general"`
	MinNoticeFirst   int                 `json:"min_notice_first"`
	ActiveStart      *time.Time          `json:"active_start,omitempty"`
	ActiveEnd        *time.Time          `json:"active_end,omitempty"`
	AccessMode       string              `json:"access_mode"`
	Location         *string             `json:"location,omitempty"`
	Config           domain.WeeklyConfig `json:"config"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Методы конвертации

// ToDomain собирает событие тенанта с подстановкой значений по умолчанию
func (r *CreateEventRequest) ToDomain(tenantID string) *domain.Event {
	event := &domain.Event{
		TenantID:         tenantID,
		Slug:             r.Slug,
		Title:            r.Title,
		Timezone:         r.Timezone,
		ScheduleType:     domain.ScheduleType(r.ScheduleType),
		DurationMin:      ptr.Deref(r.DurationMin, domain.DefaultDurationMinutes),
		MaxParticipants:  ptr.Deref(r.MaxParticipants, domain.DefaultMaxParticipants),
		MinNoticeGeneral: ptr.Deref(r.MinNoticeGeneral, domain.DefaultMinNoticeGeneral),
		MinNoticeFirst:   ptr.Deref(r.MinNoticeFirst, domain.DefaultMinNoticeFirst),
		ActiveStart:      r.ActiveStart,
		ActiveEnd:        r.ActiveEnd,
		AccessMode:       domain.AccessMode(r.AccessMode),
		Location:         r.Location,
		Config:           r.Config,
	}

	// шаг по умолчанию равен длительности
	event.IntervalMin = ptr.Deref(r.IntervalMin, event.DurationMin)

	if event.Timezone == "" {
		event.Timezone = domain.DefaultTimezone
	}
	if event.ScheduleType == "" {
		event.ScheduleType = domain.ScheduleRecurring
	}
	if event.AccessMode == "" {
		event.AccessMode = domain.AccessOpen
	}
	if event.Config == nil {
		event.Config = domain.WeeklyConfig{}
	}

	return event
}

// ApplyTo переносит переданные поля в событие
func (r *UpdateEventRequest) ApplyTo(e *domain.Event) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Timezone != nil {
		e.Timezone = *r.Timezone
	}
	if r.ScheduleType != nil {
		e.ScheduleType = domain.ScheduleType(*r.ScheduleType)
	}
	if r.DurationMin != nil {
		e.DurationMin = *r.DurationMin
	}
	if r.IntervalMin != nil {
		e.IntervalMin = *r.IntervalMin
	}
	if r.MaxParticipants != nil {
		e.MaxParticipants = *r.MaxParticipants
	}
	if r.MinNoticeGeneral != nil {
		e.MinNoticeGeneral = *r.MinNoticeGeneral
	}
	if r.MinNoticeFirst != nil {
		e.MinNoticeFirst = *r.MinNoticeFirst
	}
	if r.ClearActiveRange {
		e.ActiveStart = nil
		e.ActiveEnd = nil
	}
	if r.ActiveStart != nil {
		e.ActiveStart = r.ActiveStart
	}
	if r.ActiveEnd != nil {
		e.ActiveEnd = r.ActiveEnd
	}
	if r.AccessMode != nil {
		e.AccessMode = domain.AccessMode(*r.AccessMode)
	}
	if r.Location != nil {
		e.Location = r.Location
	}
	if r.Config != nil {
		e.Config = *r.Config
	}
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	config := e.Config
	if config == nil {
		config = domain.WeeklyConfig{}
	}

	return &EventResponse{
		ID:               e.ID,
		TenantID:         e.TenantID,
		Slug:             e.Slug,
		Title:            e.Title,
		Timezone:         e.Timezone,
		ScheduleType:     string(e.ScheduleType),
		DurationMin:      e.DurationMin,
		IntervalMin:      e.IntervalMin,
		MaxParticipants:  e.MaxParticipants,
		MinNoticeGeneral: e.MinNoticeGeneral,
		MinNoticeFirst:   e.MinNoticeFirst,
		ActiveStart:      e.ActiveStart,
		ActiveEnd:        e.ActiveEnd,
		AccessMode:       string(e.AccessMode),
		Location:         e.Location,
		Config:           config,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	resp := &EventListResponse{
		Events: make([]EventResponse, 0, len(events)),
	}

	for _, e := range events {
		if dto := FromDomainEvent(e); dto != nil {
			resp.Events = append(resp.Events, *dto)
		}
	}

	return resp
}

