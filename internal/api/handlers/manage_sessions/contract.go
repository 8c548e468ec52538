package manage_sessions

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	List(ctx context.Context, tenantID, slug string, req *models.ListSessionsRequest) (*models.SessionListResponse, error)
	Create(ctx context.Context, tenantID, slug string, req *models.CreateSessionRequest) (*models.SessionResponse, error)
	Update(ctx context.Context, tenantID, slug string, sessionID int64, req *models.UpdateSessionRequest) (*models.SessionResponse, error)
	Delete(ctx context.Context, tenantID, slug string, sessionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
