package overrides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	overrideRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/override"
	"github.com/m04kA/SMC-SchedulingService/internal/service/overrides/models"
)

// maxListRangeDays ограничение диапазона выборки override'ов
const maxListRangeDays = 366

// Service сервис управления override'ами дат
type Service struct {
	eventRepo    EventRepository
	overrideRepo OverrideRepository
	cache        SlotsCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса override'ов
func NewService(eventRepo EventRepository, overrideRepo OverrideRepository, cache SlotsCache, logger Logger) *Service {
	return &Service{
		eventRepo:    eventRepo,
		overrideRepo: overrideRepo,
		cache:        cache,
		logger:       logger,
	}
}

// List override'ы события в диапазоне дат включительно
func (s *Service) List(ctx context.Context, tenantID, slug string, req *models.ListOverridesRequest) (*models.OverrideListResponse, error) {
	s.logger.Info("List: fetching overrides for event %s/%s, range=%s..%s", tenantID, slug, req.Start, req.End)

	from, err := domain.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidDate, err)
	}
	to, err := domain.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidDate, err)
	}
	if to.Before(from) || to.Sub(from) > maxListRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must be ordered and at most %d days", ErrInvalidDate, maxListRangeDays)
	}

	event, err := s.getEvent(ctx, "List", tenantID, slug)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListByEventInRange(ctx, event.ID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d overrides for event id=%d", len(overrides), event.ID)
	return models.FromDomainOverrideList(overrides), nil
}

// Upsert создает или заменяет override даты
func (s *Service) Upsert(ctx context.Context, tenantID, slug string, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("Upsert: saving override for event %s/%s, date=%s", tenantID, slug, req.Date)

	// 1. Валидация
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("Upsert: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if req.Config != nil {
		if err := req.Config.Validate(); err != nil {
			return nil, fmt.Errorf("%w: config: %v", ErrInvalidInput, err)
		}
	}
	if req.MaxParticipants != nil && (*req.MaxParticipants < 1 || *req.MaxParticipants > domain.MaxParticipants) {
		return nil, fmt.Errorf("%w: override_max_participants must be between 1 and %d", ErrInvalidInput, domain.MaxParticipants)
	}

	// 2. Событие
	event, err := s.getEvent(ctx, "Upsert", tenantID, slug)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.overrideRepo.Upsert(ctx, req.ToDomain(event.ID, date))
	if err != nil {
		s.logger.Error("Upsert: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Upsert", event.ID, date)

	s.logger.Info("Upsert: successfully saved override id=%d for event id=%d", saved.ID, event.ID)
	return models.FromDomainOverride(saved), nil
}

// Delete удаляет override даты
func (s *Service) Delete(ctx context.Context, tenantID, slug, dateStr string) error {
	s.logger.Info("Delete: removing override for event %s/%s, date=%s", tenantID, slug, dateStr)

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	event, err := s.getEvent(ctx, "Delete", tenantID, slug)
	if err != nil {
		return err
	}

	if err := s.overrideRepo.Delete(ctx, event.ID, date); err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("Delete: no override for event id=%d on %s", event.ID, dateStr)
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error for event id=%d: %v", event.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete", event.ID, date)

	s.logger.Info("Delete: successfully removed override for event id=%d on %s", event.ID, dateStr)
	return nil
}

func (s *Service) getEvent(ctx context.Context, op, tenantID, slug string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByTenantAndSlug(ctx, tenantID, slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("%s: event %s/%s not found", op, tenantID, slug)
			return nil, ErrEventNotFound
		}
		s.logger.Error("%s: repository error for event %s/%s: %v", op, tenantID, slug, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return event, nil
}

func (s *Service) invalidate(ctx context.Context, op string, eventID int64, date time.Time) {
	if err := s.cache.InvalidateDate(ctx, eventID, date); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for event id=%d, date=%s: %v",
			op, eventID, date.Format(domain.DateFormat), err)
	}
}
