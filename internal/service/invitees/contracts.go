package invitees

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error)
}

// InviteeRepository интерфейс репозитория приглашений
type InviteeRepository interface {
	Create(ctx context.Context, inv *domain.Invitee) (*domain.Invitee, error)
	GetByToken(ctx context.Context, eventID int64, token string) (*domain.Invitee, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Invitee, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InviteeStatus) error
}

// TokenGenerator генератор токенов приглашений
type TokenGenerator func() (string, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
