package create_booking

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
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	inviteeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/invitee"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/dayloader"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const notifyTimeout = 3 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	eventRepo    EventRepository
	bookingRepo  BookingRepository
	inviteeRepo  InviteeRepository
	slotLocker   SlotLocker
	loader       DayLoader
	cache        SlotsCache
	publisher    Publisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	bookingRepo BookingRepository,
	inviteeRepo InviteeRepository,
	slotLocker SlotLocker,
	loader DayLoader,
	cache SlotsCache,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:    eventRepo,
		bookingRepo:  bookingRepo,
		inviteeRepo:  inviteeRepo,
		slotLocker:   slotLocker,
		loader:       loader,
		cache:        cache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (тесты)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка брони выполняются в одной транзакции
// под блокировкой строки slot_locks (event_id, start_time).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, slug=%s, date=%s, time=%s",
		req.TenantID, req.Slug, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем событие
	event, err := uc.eventRepo.GetByTenantAndSlug(ctx, req.TenantID, req.Slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("CreateBooking: event %s/%s not found", req.TenantID, req.Slug)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event %s/%s: %v", req.TenantID, req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 3. Режим доступа
	if event.IsClosed() {
		uc.logger.Warn("CreateBooking: event id=%d is closed", event.ID)
		return nil, ErrEventClosed
	}

	token := ""
	if req.Token != nil {
		token = strings.TrimSpace(*req.Token)
	}
	if event.IsRestricted() && token == "" {
		uc.logger.Warn("CreateBooking: event id=%d is restricted, token is missing", event.ID)
		return nil, ErrAccessDenied
	}

	loc, err := event.TimeLocation()
	if err != nil {
		uc.logger.Error("CreateBooking: event id=%d has invalid timezone %q: %v", event.ID, event.Timezone, err)
		return nil, fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
	}

	// 4. Переводим запрошенное время в момент UTC
	requested, err := dayloader.RequestedInstant(req.Date, req.Time, loc)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	var result *domain.Booking

	// 5. Допуск в транзакции под блокировкой слота
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем слот
		if err := uc.slotLocker.Acquire(txCtx, event.ID, requested); err != nil {
			uc.logger.Error("CreateBooking: failed to lock slot %s: %v", requested.Format(time.RFC3339), err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		// 5.2. Время берем внутри транзакции: при повторе оно должно быть свежим
		now := uc.timeProvider.Now()

		// 5.3. Актуальные данные дня
		in, err := uc.loader.Day(txCtx, event, loc, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load day data: %v", err)
			return fmt.Errorf("%w: failed to load day: %w", ErrInternal, err)
		}

		// 5.4. Токен приглашения
		var invitee *domain.Invitee
		if event.IsRestricted() {
			invitee, err = uc.checkInvitee(txCtx, event.ID, token)
			if err != nil {
				return err
			}
		}

		// 5.5. Проверяем слот: сетка, активный период, notice, вместимость
		slot, err := availability.Admit(in, requested, 0)
		if err != nil {
			return uc.mapAdmitError(err, requested)
		}

		uc.logger.Info("CreateBooking: slot %s admitted, %d/%d spots taken",
			requested.Format(time.RFC3339), slot.Booked, slot.Capacity)

		// 5.6. Сохраняем бронирование
		booking := &domain.Booking{
			EventID:         event.ID,
			StartTime:       slot.Start,
			EndTime:         slot.End,
			CustomerName:    strings.TrimSpace(req.Name),
			CustomerEmail:   strings.TrimSpace(req.Email),
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
			LabelID:         req.LabelID,
			ManagementToken: uuid.NewString(),
			Location:        slot.Location,
		}
		if invitee != nil {
			booking.Token = &invitee.Token
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 5.7. Приглашение использовано
		if invitee != nil {
			if err := uc.inviteeRepo.UpdateStatus(txCtx, invitee.ID, domain.InviteeUsed); err != nil {
				uc.logger.Error("CreateBooking: failed to mark invitee id=%d used: %v", invitee.ID, err)
				return fmt.Errorf("%w: failed to mark invitee used: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if errors.Is(err, txmanager.ErrRetriesExhausted) {
		uc.logger.Warn("CreateBooking: slot %s is contended: %v", requested.Format(time.RFC3339), err)
		return nil, ErrSlotBusy
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for event id=%d at %s",
		result.ID, event.ID, result.StartTime.Format(time.RFC3339))

	// 6. После коммита: сбрасываем кэш и уведомляем
	uc.afterCommit(ctx, event, result, req.Date)

	return &Response{
		ID:              result.ID,
		EventSlug:       event.Slug,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Location:        result.Location,
		Status:          string(result.Status),
		ManagementToken: result.ManagementToken,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// checkInvitee проверяет токен приглашения под блокировкой строки
func (uc *UseCase) checkInvitee(ctx context.Context, eventID int64, token string) (*domain.Invitee, error) {
	invitee, err := uc.inviteeRepo.GetByToken(ctx, eventID, token)
	if err != nil {
		if errors.Is(err, inviteeRepo.ErrInviteeNotFound) {
			uc.logger.Warn("CreateBooking: invitation token not found for event id=%d", eventID)
			return nil, ErrInvalidToken
		}
		uc.logger.Error("CreateBooking: failed to get invitee: %v", err)
		return nil, fmt.Errorf("%w: failed to get invitee: %w", ErrInternal, err)
	}

	switch invitee.Status {
	case domain.InviteeActive:
		return invitee, nil
	case domain.InviteeUsed:
		uc.logger.Warn("CreateBooking: invitee id=%d already used", invitee.ID)
		return nil, ErrTokenAlreadyUsed
	default:
		uc.logger.Warn("CreateBooking: invitee id=%d has status %s", invitee.ID, invitee.Status)
		return nil, ErrInvalidToken
	}
}

func (uc *UseCase) mapAdmitError(err error, requested time.Time) error {
	at := requested.Format(time.RFC3339)
	switch {
	case errors.Is(err, availability.ErrSlotNotOffered):
		uc.logger.Warn("CreateBooking: %s is not an offered slot", at)
		return ErrInvalidTimeSlot
	case errors.Is(err, availability.ErrOutsideNotice):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrOutsideNotice, err)
	case errors.Is(err, availability.ErrSlotFull):
		uc.logger.Warn("CreateBooking: slot %s is full: %v", at, err)
		return ErrSlotFull
	default:
		uc.logger.Error("CreateBooking: admission failed for %s: %v", at, err)
		return fmt.Errorf("%w: admission: %v", ErrInternal, err)
	}
}

// afterCommit побочные эффекты после фиксации транзакции, ошибки только логируются
func (uc *UseCase) afterCommit(ctx context.Context, event *domain.Event, booking *domain.Booking, date time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := uc.cache.InvalidateDate(ctx, event.ID, date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache: %v", err)
	}

	msg := notifications.NewBookingEvent(notifications.BookingConfirmed, event, booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", msg.Type, booking.ID, err)
	}
}
