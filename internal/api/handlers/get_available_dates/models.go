package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
)

// TimezoneHeader часовой пояс события, в котором заданы даты ответа
const TimezoneHeader = "X-Event-Timezone"

// AvailableDatesResponse HTTP response model: голый список YYYY-MM-DD по возрастанию
type AvailableDatesResponse []string

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) AvailableDatesResponse {
	dates := make(AvailableDatesResponse, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}
	return dates
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(tenantID, slug, startStr, endStr string) (*getAvailableDates.Request, error) {
	start, err := domain.ParseDate(startStr)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &getAvailableDates.Request{
		TenantID: tenantID,
		Slug:     slug,
		Start:    start,
		End:      end,
	}, nil
}
