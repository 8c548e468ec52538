package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CountAt количество активных броней, начинающихся ровно в start.
// Бронь excludeID не учитывается (перенос самой себя).
func CountAt(start time.Time, bookings []*domain.Booking, excludeID int64) int {
	count := 0
	for _, b := range bookings {
		if !b.IsActive() || b.ID == excludeID {
			continue
		}
		if b.StartTime.Equal(start) {
			count++
		}
	}
	return count
}

// ApplyCapacity заполняет Booked и оставляет только слоты со свободными местами
func ApplyCapacity(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		s.Booked = CountAt(s.Start, bookings, 0)
		if s.Booked < s.Capacity {
			result = append(result, s)
		}
	}
	return result
}
