package manage_invitees

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/invitees/models"
)

type InviteeService interface {
	Create(ctx context.Context, tenantID, slug string, req *models.CreateInviteeRequest) (*models.InviteeResponse, error)
	List(ctx context.Context, tenantID, slug string) (*models.InviteeListResponse, error)
	UpdateStatus(ctx context.Context, tenantID, slug, token string, req *models.UpdateInviteeStatusRequest) (*models.InviteeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
