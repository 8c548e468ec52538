package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DayInput всё, что нужно для расчета одного календарного дня события
type DayInput struct {
	Event    *domain.Event
	Date     time.Time // календарный день в поясе события, полночь UTC
	Override *domain.Override
	Sessions []*domain.EventSession // MANUAL: сессии вокруг даты
	Bookings []*domain.Booking      // брони этого дня (любой статус)
	Now      time.Time
}

// Candidates все слоты дня до фильтров: override + шаблон (или сессии), с локацией
func Candidates(in DayInput) ([]domain.Slot, error) {
	loc, err := in.Event.TimeLocation()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, in.Event.Timezone, err)
	}

	var slots []domain.Slot
	if in.Event.IsManual() {
		if in.Override != nil && in.Override.IsUnavailable {
			return []domain.Slot{}, nil
		}
		slots = SessionSlots(in.Sessions, in.Date, loc, in.Event.MaxParticipants)
		if in.Override != nil && in.Override.MaxParticipants != nil {
			for i := range slots {
				slots[i].Capacity = *in.Override.MaxParticipants
			}
		}
	} else {
		windows := ResolveDay(in.Event, in.Date, in.Override)
		slots = GenerateSlots(windows, in.Date, loc, in.Event.DurationMin, in.Event.IntervalMin)
	}

	for i := range slots {
		slots[i].Location = resolveLocation(in.Event, in.Override, slots[i].Location)
	}

	return slots, nil
}

// Available бронируемые слоты дня: кандидаты -> активный период -> notice -> вместимость.
// Закрытое событие не предлагает слотов.
func Available(in DayInput) ([]domain.Slot, error) {
	if in.Event.IsClosed() {
		return []domain.Slot{}, nil
	}

	slots, err := Candidates(in)
	if err != nil {
		return nil, err
	}

	slots = FilterActiveRange(slots, in.Event)
	slots = FilterLeadTime(slots, in.Now, PolicyOf(in.Event), confirmedStarts(in.Bookings, 0))
	return ApplyCapacity(slots, in.Bookings), nil
}

// Admit проверяет, что requested можно забронировать прямо сейчас.
// Вызывается внутри транзакции с актуальными бронями дня.
// excludeID - бронь, которая переносится (не занимает место и не смягчает notice).
func Admit(in DayInput, requested time.Time, excludeID int64) (*domain.Slot, error) {
	slots, err := Candidates(in)
	if err != nil {
		return nil, err
	}

	var slot *domain.Slot
	for i := range slots {
		if slots[i].Start.Equal(requested) {
			slot = &slots[i]
			break
		}
	}
	if slot == nil {
		return nil, ErrSlotNotOffered
	}

	if !in.Event.IsWithinActiveRange(slot.Start) {
		return nil, fmt.Errorf("%w: %s is outside the active range", ErrOutsideNotice, slot.Start.Format(time.RFC3339))
	}

	policy := PolicyOf(in.Event)
	starts := confirmedStarts(in.Bookings, excludeID)
	if !policy.Allows(slot.Start, in.Now, starts) {
		return nil, fmt.Errorf("%w: %s requires %s notice",
			ErrOutsideNotice, slot.Start.Format(time.RFC3339), policy.EffectiveNotice(slot.Start, starts))
	}

	slot.Booked = CountAt(slot.Start, in.Bookings, excludeID)
	if slot.Booked >= slot.Capacity {
		return nil, fmt.Errorf("%w: %d/%d", ErrSlotFull, slot.Booked, slot.Capacity)
	}

	return slot, nil
}

// resolveLocation: override, затем сессия, затем событие
func resolveLocation(event *domain.Event, override *domain.Override, sessionLocation *string) *string {
	if override != nil && override.Location != nil {
		return override.Location
	}
	if sessionLocation != nil {
		return sessionLocation
	}
	return event.Location
}
