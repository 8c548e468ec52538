// Package dayloader собирает данные календарного дня события для движка доступности
package dayloader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/override"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Loader читает override, сессии и брони дня
type Loader struct {
	overrideRepo OverrideRepository
	sessionRepo  SessionRepository
	bookingRepo  BookingRepository
}

func New(overrides OverrideRepository, sessions SessionRepository, bookings BookingRepository) *Loader {
	return &Loader{
		overrideRepo: overrides,
		sessionRepo:  sessions,
		bookingRepo:  bookings,
	}
}

// Day загружает один день. Брони только активные, в границах локального дня.
// Внутри транзакции вызывается после захвата блокировки слота.
func (l *Loader) Day(ctx context.Context, event *domain.Event, loc *time.Location, date, now time.Time) (availability.DayInput, error) {
	in := availability.DayInput{Event: event, Date: date, Now: now}

	override, err := l.overrideRepo.GetByEventAndDate(ctx, event.ID, date)
	switch {
	case errors.Is(err, overrideRepo.ErrOverrideNotFound):
	case err != nil:
		return in, fmt.Errorf("%w: override: %w", ErrLoad, err)
	default:
		in.Override = override
	}

	from, to := domain.DayBounds(date, loc)

	if event.IsManual() {
		sessions, err := l.sessionRepo.ListByEventInRange(ctx, event.ID, from, to)
		if err != nil {
			return in, fmt.Errorf("%w: sessions: %w", ErrLoad, err)
		}
		in.Sessions = sessions
	}

	bookings, err := l.bookingRepo.ListByEvent(ctx, domain.BookingsFilter{
		EventID: event.ID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return in, fmt.Errorf("%w: bookings: %w", ErrLoad, err)
	}
	in.Bookings = bookings

	return in, nil
}

// Range загружает дни [start, end] одним запросом на каждую таблицу
func (l *Loader) Range(ctx context.Context, event *domain.Event, loc *time.Location, start, end, now time.Time) ([]availability.DayInput, error) {
	overrides, err := l.overrideRepo.ListByEventInRange(ctx, event.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: overrides: %w", ErrLoad, err)
	}

	from, _ := domain.DayBounds(start, loc)
	_, to := domain.DayBounds(end, loc)

	var sessions []*domain.EventSession
	if event.IsManual() {
		sessions, err = l.sessionRepo.ListByEventInRange(ctx, event.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: sessions: %w", ErrLoad, err)
		}
	}

	bookings, err := l.bookingRepo.ListByEvent(ctx, domain.BookingsFilter{
		EventID: event.ID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %w", ErrLoad, err)
	}

	byDate := make(map[time.Time]*domain.Override, len(overrides))
	for _, o := range overrides {
		byDate[o.Date] = o
	}

	bookingsByDate := make(map[time.Time][]*domain.Booking)
	for _, b := range bookings {
		day := domain.LocalDate(b.StartTime, loc)
		bookingsByDate[day] = append(bookingsByDate[day], b)
	}

	sessionsByDate := make(map[time.Time][]*domain.EventSession)
	for _, s := range sessions {
		day := domain.LocalDate(s.StartTime, loc)
		sessionsByDate[day] = append(sessionsByDate[day], s)
	}

	days := make([]availability.DayInput, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, availability.DayInput{
			Event:    event,
			Date:     d,
			Override: byDate[d],
			Sessions: sessionsByDate[d],
			Bookings: bookingsByDate[d],
			Now:      now,
		})
	}

	return days, nil
}

// RequestedInstant переводит время из запроса в момент UTC.
// value: RFC3339 (должен попадать в локальный день date) или "HH:MM" по поясу события.
func RequestedInstant(date time.Time, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: time is required", ErrInvalidTimeSlot)
	}

	if instant, err := time.Parse(time.RFC3339, value); err == nil {
		if !domain.LocalDate(instant, loc).Equal(date) {
			return time.Time{}, fmt.Errorf("%w: %s is not on %s", ErrInvalidTimeSlot, value, date.Format(domain.DateFormat))
		}
		return instant.UTC(), nil
	}

	wall, err := types.NewTimeStringFromString(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	instant, ok := availability.LocalToUTC(date, wall, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s does not exist on %s", ErrInvalidTimeSlot, wall, date.Format(domain.DateFormat))
	}
	return instant, nil
}
