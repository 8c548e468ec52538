package manage_events

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

type EventService interface {
	Create(ctx context.Context, tenantID string, req *models.CreateEventRequest) (*models.EventResponse, error)
	Get(ctx context.Context, tenantID, slug string) (*models.EventResponse, error)
	List(ctx context.Context, tenantID string) (*models.EventListResponse, error)
	Update(ctx context.Context, tenantID, slug string, req *models.UpdateEventRequest) (*models.EventResponse, error)
	Delete(ctx context.Context, tenantID, slug string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
