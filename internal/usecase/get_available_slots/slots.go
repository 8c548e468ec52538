package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// dropStale убирает из закэшированного списка слоты, до которых осталось
// меньше минимального уведомления. Точную политику (first/general) пересчитывает
// допуск брони, здесь берется меньшее из двух значений.
func dropStale(slots []domain.Slot, now time.Time, policy availability.NoticePolicy) []domain.Slot {
	notice := policy.General
	if policy.First < notice {
		notice = policy.First
	}
	threshold := now.Add(time.Duration(notice) * time.Minute)

	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Start.Before(threshold) {
			result = append(result, s)
		}
	}
	return result
}

// toResponseSlots конвертирует слоты движка в модель ответа
func toResponseSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			Start:          s.Start,
			End:            s.End,
			AvailableSpots: s.Available(),
			TotalSpots:     s.Capacity,
			Location:       s.Location,
		})
	}
	return result
}
