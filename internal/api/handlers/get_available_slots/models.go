package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
// slots - начала бронируемых слотов в UTC (RFC3339) по возрастанию,
// details - те же слоты со свободными местами и локацией
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	Timezone string          `json:"timezone"`
	Slots    []string        `json:"slots"`
	Details  []AvailableSlot `json:"details"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	AvailableSpots int     `json:"available_spots"`
	TotalSpots     int     `json:"total_spots"`
	Location       *string `json:"location,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	starts := make([]string, len(resp.Slots))
	details := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		starts[i] = slot.Start.UTC().Format(time.RFC3339)
		details[i] = AvailableSlot{
			Start:          starts[i],
			End:            slot.End.UTC().Format(time.RFC3339),
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
			Location:       slot.Location,
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Slots:    starts,
		Details:  details,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(tenantID, slug, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantID: tenantID,
		Slug:     slug,
		Date:     date,
	}, nil
}
