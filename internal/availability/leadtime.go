package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// NoticePolicy минимальное время до начала слота, минуты
type NoticePolicy struct {
	General int // если до слота уже есть подтвержденная бронь
	First   int // если это первая бронь
}

func PolicyOf(event *domain.Event) NoticePolicy {
	return NoticePolicy{General: event.MinNoticeGeneral, First: event.MinNoticeFirst}
}

// EffectiveNotice выбирает уведомление для candidate.
//
// earlierStarts - начала подтвержденных броней того же события в тот же
// локальный день события (dayloader кладет в DayInput.Bookings брони за [00:00, 24:00)
// в часовом поясе события). Если среди них есть момент строго раньше
// candidate, действует General, иначе First. Брони соседних дней и других
// событий правило не смягчают; бронь в тот же момент тоже не считается.
func (p NoticePolicy) EffectiveNotice(candidate time.Time, earlierStarts []time.Time) time.Duration {
	for _, s := range earlierStarts {
		if s.Before(candidate) {
			return time.Duration(p.General) * time.Minute
		}
	}
	return time.Duration(p.First) * time.Minute
}

// Allows слот допустим, если candidate >= now + effective notice
func (p NoticePolicy) Allows(candidate, now time.Time, confirmedStarts []time.Time) bool {
	return !candidate.Before(now.Add(p.EffectiveNotice(candidate, confirmedStarts)))
}

// FilterLeadTime отбрасывает слоты, нарушающие политику уведомления.
// Прошедшие слоты отбрасываются тем же правилом (notice >= 0).
func FilterLeadTime(slots []domain.Slot, now time.Time, policy NoticePolicy, confirmedStarts []time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if policy.Allows(s.Start, now, confirmedStarts) {
			result = append(result, s)
		}
	}
	return result
}

// FilterActiveRange оставляет слоты внутри [ActiveStart, ActiveEnd] события
func FilterActiveRange(slots []domain.Slot, event *domain.Event) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if event.IsWithinActiveRange(s.Start) {
			result = append(result, s)
		}
	}
	return result
}

// confirmedStarts моменты начала активных броней, кроме excludeID
func confirmedStarts(bookings []*domain.Booking, excludeID int64) []time.Time {
	starts := make([]time.Time, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.ID == excludeID {
			continue
		}
		starts = append(starts, b.StartTime)
	}
	return starts
}
