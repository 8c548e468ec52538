package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/dayloader"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const notifyTimeout = 3 * time.Second

// UseCase use case для переноса брони на другой слот
type UseCase struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	slotLocker   SlotLocker
	loader       DayLoader
	cache        SlotsCache
	publisher    Publisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	slotLocker SlotLocker,
	loader DayLoader,
	cache SlotsCache,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		slotLocker:   slotLocker,
		loader:       loader,
		cache:        cache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронь в одной транзакции под блокировками брони и нового слота:
// допуск нового слота выполняется до освобождения старого,
// поэтому неудачный перенос оставляет исходную бронь без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: date=%s, time=%s", req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация
	if _, err := uuid.Parse(req.ManagementToken); err != nil {
		uc.logger.Warn("RescheduleBooking: malformed management token")
		return nil, fmt.Errorf("%w: malformed management token", ErrInvalidInput)
	}
	if req.Date.IsZero() || strings.TrimSpace(req.Time) == "" {
		uc.logger.Warn("RescheduleBooking: date and time are required")
		return nil, fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}

	var (
		event   *domain.Event
		booking *domain.Booking
		prevDay time.Time
		prev    time.Time
	)

	// 2. Транзакция переноса
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Бронь под блокировкой строки
		b, err := uc.bookingRepo.GetByManagementToken(txCtx, req.ManagementToken)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking not found")
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking: %v", err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if b.IsCancelled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d is cancelled", b.ID)
			return ErrBookingCancelled
		}

		// 2.2. Событие брони
		e, err := uc.eventRepo.GetByID(txCtx, b.EventID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get event id=%d: %v", b.EventID, err)
			return fmt.Errorf("%w: failed to get event: %w", ErrInternal, err)
		}
		if e.IsClosed() {
			uc.logger.Warn("RescheduleBooking: event id=%d is closed", e.ID)
			return ErrEventClosed
		}

		loc, err := e.TimeLocation()
		if err != nil {
			uc.logger.Error("RescheduleBooking: event id=%d has invalid timezone %q: %v", e.ID, e.Timezone, err)
			return fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
		}

		requested, err := dayloader.RequestedInstant(req.Date, req.Time, loc)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
		}

		// 2.3. Блокируем новый слот
		if err := uc.slotLocker.Acquire(txCtx, e.ID, requested); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock slot: %v", err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		// 2.4. Допуск нового слота без учета самой переносимой брони
		in, err := uc.loader.Day(txCtx, e, loc, req.Date, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to load day data: %v", err)
			return fmt.Errorf("%w: failed to load day: %w", ErrInternal, err)
		}

		slot, err := availability.Admit(in, requested, b.ID)
		if err != nil {
			return uc.mapAdmitError(err, requested)
		}

		// 2.5. Перезаписываем время брони
		if err := uc.bookingRepo.Reschedule(txCtx, b.ID, slot.Start, slot.End, slot.Location); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		prev = b.StartTime
		prevDay = domain.LocalDate(b.StartTime, loc)
		b.StartTime = slot.Start
		b.EndTime = slot.End
		b.Location = slot.Location

		event = e
		booking = b
		return nil
	})

	if errors.Is(err, txmanager.ErrRetriesExhausted) {
		uc.logger.Warn("RescheduleBooking: slot is contended: %v", err)
		return nil, ErrSlotBusy
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s to %s",
		booking.ID, prev.Format(time.RFC3339), booking.StartTime.Format(time.RFC3339))

	uc.afterCommit(ctx, event, booking, prev, prevDay, req.Date)

	return &Response{
		ID:            booking.ID,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		PreviousStart: prev,
		Location:      booking.Location,
		Status:        string(booking.Status),
	}, nil
}

func (uc *UseCase) mapAdmitError(err error, requested time.Time) error {
	at := requested.Format(time.RFC3339)
	switch {
	case errors.Is(err, availability.ErrSlotNotOffered):
		uc.logger.Warn("RescheduleBooking: %s is not an offered slot", at)
		return ErrInvalidTimeSlot
	case errors.Is(err, availability.ErrOutsideNotice):
		uc.logger.Warn("RescheduleBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrOutsideNotice, err)
	case errors.Is(err, availability.ErrSlotFull):
		uc.logger.Warn("RescheduleBooking: slot %s is full: %v", at, err)
		return ErrSlotFull
	default:
		uc.logger.Error("RescheduleBooking: admission failed for %s: %v", at, err)
		return fmt.Errorf("%w: admission: %v", ErrInternal, err)
	}
}

// afterCommit сбрасывает кэш старого и нового дня и публикует booking.rescheduled
func (uc *UseCase) afterCommit(ctx context.Context, event *domain.Event, booking *domain.Booking, prev, prevDay, newDay time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	days := []time.Time{prevDay}
	if !newDay.Equal(prevDay) {
		days = append(days, newDay)
	}
	for _, d := range days {
		if err := uc.cache.InvalidateDate(ctx, event.ID, d); err != nil {
			uc.logger.Warn("RescheduleBooking: failed to invalidate slots cache for %s: %v", d.Format(domain.DateFormat), err)
		}
	}

	msg := notifications.NewBookingEvent(notifications.BookingRescheduled, event, booking, uc.timeProvider.Now())
	msg.PreviousStart = &prev
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish %s for booking id=%d: %v", msg.Type, booking.ID, err)
	}
}
