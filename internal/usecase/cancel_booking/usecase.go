package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

const notifyTimeout = 3 * time.Second

// UseCase use case для самостоятельной отмены брони по токену управления
type UseCase struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	cache        SlotsCache
	publisher    Publisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	cache SlotsCache,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
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

// Execute отменяет бронь. Повторная отмена - успешный no-op:
// занятость считается по статусу, поэтому место не освобождается дважды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: cancelling booking by management token")

	// 1. Токен управления - UUID
	if _, err := uuid.Parse(req.ManagementToken); err != nil {
		uc.logger.Warn("CancelBooking: malformed management token")
		return nil, fmt.Errorf("%w: malformed management token", ErrInvalidInput)
	}

	var (
		booking *domain.Booking
		changed bool
	)

	// 2. Блокируем строку брони и меняем статус
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByManagementToken(txCtx, req.ManagementToken)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking not found")
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking: %v", err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if b.IsCancelled() {
			uc.logger.Info("CancelBooking: booking id=%d is already cancelled", b.ID)
			booking = b
			return nil
		}

		if err := uc.bookingRepo.Cancel(txCtx, b.ID); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		now := uc.timeProvider.Now().UTC()
		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
		booking = b
		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if changed {
		uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", booking.ID)
		uc.afterCommit(ctx, booking)
	}

	return &Response{
		ID:               booking.ID,
		Status:           string(booking.Status),
		StartTime:        booking.StartTime,
		CancelledAt:      booking.CancelledAt,
		AlreadyCancelled: !changed,
	}, nil
}

// afterCommit сбрасывает кэш дня и публикует booking.cancelled
func (uc *UseCase) afterCommit(ctx context.Context, booking *domain.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	event, err := uc.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to load event id=%d for notifications: %v", booking.EventID, err)
		return
	}

	loc, err := event.TimeLocation()
	if err != nil {
		uc.logger.Warn("CancelBooking: event id=%d has invalid timezone: %v", event.ID, err)
		return
	}

	if err := uc.cache.InvalidateDate(ctx, event.ID, domain.LocalDate(booking.StartTime, loc)); err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate slots cache: %v", err)
	}

	msg := notifications.NewBookingEvent(notifications.BookingCancelled, event, booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish %s for booking id=%d: %v", msg.Type, booking.ID, err)
	}
}
