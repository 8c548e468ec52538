package manage_overrides

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/overrides/models"
)

type OverrideService interface {
	List(ctx context.Context, tenantID, slug string, req *models.ListOverridesRequest) (*models.OverrideListResponse, error)
	Upsert(ctx context.Context, tenantID, slug string, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
	Delete(ctx context.Context, tenantID, slug, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
