package domain

import "time"

// InviteeStatus статус приглашения
type InviteeStatus string

const (
	InviteeActive  InviteeStatus = "ACTIVE"
	InviteeUsed    InviteeStatus = "USED"
	InviteeRevoked InviteeStatus = "REVOKED"
)

func (s InviteeStatus) IsValid() bool {
	return s == InviteeActive || s == InviteeUsed || s == InviteeRevoked
}

// Invitee приглашение на RESTRICTED событие
type Invitee struct {
	ID        int64
	EventID   int64
	Token     string
	Email     *string
	Status    InviteeStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
