package list_event_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(tenantID, slug, startStr, endStr, includeCancelledStr string) (*models.ListEventBookingsRequest, error) {
	req := &models.ListEventBookingsRequest{
		TenantID: tenantID,
		Slug:     slug,
		Start:    startStr,
		End:      endStr,
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid include_cancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
