package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateSlots раскладывает окна дня на слоты с шагом intervalMin.
// Слот входит, пока start+durationMin <= end окна. Результат в UTC,
// по возрастанию, без дублей (при совпадении остается большая вместимость).
func GenerateSlots(windows []Window, date time.Time, loc *time.Location, durationMin, intervalMin int) []domain.Slot {
	if durationMin <= 0 {
		return nil
	}
	if intervalMin <= 0 {
		intervalMin = durationMin
	}

	duration := time.Duration(durationMin) * time.Minute
	slots := make([]domain.Slot, 0)

	for _, w := range windows {
		start, end := w.Start.Minutes(), w.End.Minutes()
		if start < 0 || end < 0 {
			continue
		}

		for m := start; m+durationMin <= end; m += intervalMin {
			wall, err := types.FromMinutes(m)
			if err != nil {
				break
			}

			utc, ok := LocalToUTC(date, wall, loc)
			if !ok {
				// время не существует (переход на летнее время)
				continue
			}

			slots = append(slots, domain.Slot{
				Start:    utc,
				End:      utc.Add(duration),
				Capacity: w.Capacity,
			})
		}
	}

	return normalize(slots)
}

// SessionSlots слоты режима MANUAL: сессии, начинающиеся в день date по поясу события
func SessionSlots(sessions []*domain.EventSession, date time.Time, loc *time.Location, defaultCapacity int) []domain.Slot {
	slots := make([]domain.Slot, 0, len(sessions))

	for _, s := range sessions {
		if !domain.LocalDate(s.StartTime, loc).Equal(date) {
			continue
		}

		capacity := s.MaxParticipants
		if capacity <= 0 {
			capacity = defaultCapacity
		}

		slots = append(slots, domain.Slot{
			Start:     s.StartTime.UTC(),
			End:       s.EndTime.UTC(),
			Capacity:  capacity,
			Location:  s.Location,
			SessionID: ptr.Ptr(s.ID),
		})
	}

	return normalize(slots)
}

// normalize сортирует слоты и схлопывает одинаковые моменты начала
func normalize(slots []domain.Slot) []domain.Slot {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		n := len(result)
		if n > 0 && result[n-1].Start.Equal(s.Start) {
			if s.Capacity > result[n-1].Capacity {
				result[n-1] = s
			}
			continue
		}
		result = append(result, s)
	}
	return result
}
