package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateInviteeRequest запрос на создание приглашения
type CreateInviteeRequest struct {
	Email *string `json:"email,omitempty"`
}

// UpdateInviteeStatusRequest запрос на смену статуса приглашения
type UpdateInviteeStatusRequest struct {
	Status string `json:"status"`
}

// InviteeResponse ответ с данными приглашения
type InviteeResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	Token     string    `json:"token"`
	Email     *string   `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InviteeListResponse ответ со списком приглашений
type InviteeListResponse struct {
	Invitees []InviteeResponse `json:"invitees"`
}

// FromDomainInvitee конвертирует domain модель в DTO
func FromDomainInvitee(inv *domain.Invitee) *InviteeResponse {
	if inv == nil {
		return nil
	}
	return &InviteeResponse{
		ID:        inv.ID,
		EventID:   inv.EventID,
		Token:     inv.Token,
		Email:     inv.Email,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// FromDomainInviteeList конвертирует список domain моделей в DTO
func FromDomainInviteeList(invitees []*domain.Invitee) *InviteeListResponse {
	resp := &InviteeListResponse{
		Invitees: make([]InviteeResponse, 0, len(invitees)),
	}
	for _, inv := range invitees {
		if dto := FromDomainInvitee(inv); dto != nil {
			resp.Invitees = append(resp.Invitees, *dto)
		}
	}
	return resp
}
