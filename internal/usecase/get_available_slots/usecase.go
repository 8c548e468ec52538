package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	slotsCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/slots"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	eventRepo    EventRepository
	loader       DayLoader
	cache        SlotsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	loader DayLoader,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:    eventRepo,
		loader:       loader,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (тесты)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов.
// Список носит справочный характер: бронь всё равно перепроверяется при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, slug=%s, date=%s",
		req.TenantID, req.Slug, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем событие
	event, err := uc.eventRepo.GetByTenantAndSlug(ctx, req.TenantID, req.Slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("GetAvailableSlots: event %s/%s not found", req.TenantID, req.Slug)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get event %s/%s: %v", req.TenantID, req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	response := &Response{
		Date:     req.Date,
		Timezone: event.Timezone,
		Slots:    []Slot{},
	}

	// 4. Закрытое событие слотов не предлагает
	if event.IsClosed() {
		uc.logger.Info("GetAvailableSlots: event id=%d is closed", event.ID)
		return response, nil
	}

	loc, err := event.TimeLocation()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: event id=%d has invalid timezone %q: %v", event.ID, event.Timezone, err)
		return nil, fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
	}

	// 5. Пробуем кэш
	cached, err := uc.cache.Get(ctx, event.ID, req.Date)
	switch {
	case err == nil:
		response.Slots = toResponseSlots(dropStale(cached, now, availability.PolicyOf(event)))
		uc.logger.Info("GetAvailableSlots: cache hit, %d slots for event id=%d", len(response.Slots), event.ID)
		return response, nil
	case !errors.Is(err, slotsCache.ErrCacheMiss):
		uc.logger.Warn("GetAvailableSlots: cache error for event id=%d: %v", event.ID, err)
	}

	// 6. Загружаем данные дня
	in, err := uc.loader.Day(ctx, event, loc, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load day data: %v", err)
		return nil, fmt.Errorf("%w: failed to load day: %v", ErrInternal, err)
	}

	// 7. Считаем доступные слоты
	slots, err := availability.Available(in)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: availability failed for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: availability: %v", ErrInternal, err)
	}

	// 8. Кладем в кэш, ошибка кэша не влияет на ответ
	if err := uc.cache.Set(ctx, event.ID, req.Date, slots); err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to cache slots for event id=%d: %v", event.ID, err)
	}

	response.Slots = toResponseSlots(slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for event id=%d, date=%s",
		len(response.Slots), event.ID, req.Date.Format(domain.DateFormat))

	return response, nil
}
