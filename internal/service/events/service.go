package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

// Service сервис администрирования событий тенанта
type Service struct {
	eventRepo EventRepository
	cache     SlotsCache
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(eventRepo EventRepository, cache SlotsCache, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Create создает событие
func (s *Service) Create(ctx context.Context, tenantID string, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event tenant=%s, slug=%s", tenantID, req.Slug)

	// 1. Валидация
	if err := validateSlug(req.Slug); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	event := req.ToDomain(tenantID)
	if err := validateEvent(event); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventAlreadyExists) {
			s.logger.Warn("Create: event %s/%s already exists", tenantID, req.Slug)
			return nil, ErrEventAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created event id=%d", created.ID)
	return models.FromDomainEvent(created), nil
}

// Get получает событие по slug
func (s *Service) Get(ctx context.Context, tenantID, slug string) (*models.EventResponse, error) {
	event, err := s.get(ctx, "Get", tenantID, slug)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEvent(event), nil
}

// List все события тенанта
func (s *Service) List(ctx context.Context, tenantID string) (*models.EventListResponse, error) {
	s.logger.Info("List: fetching events for tenant=%s", tenantID)

	events, err := s.eventRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d events for tenant=%s", len(events), tenantID)
	return models.FromDomainEventList(events), nil
}

// Update частично обновляет событие и сбрасывает кэш его слотов
func (s *Service) Update(ctx context.Context, tenantID, slug string, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.get(ctx, "Update", tenantID, slug)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(event)
	if err := validateEvent(event); err != nil {
		s.logger.Warn("Update: validation failed for event id=%d: %v", event.ID, err)
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("Update: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Update", updated.ID)

	s.logger.Info("Update: successfully updated event id=%d", updated.ID)
	return models.FromDomainEvent(updated), nil
}

// Delete удаляет событие со всеми зависимыми записями
func (s *Service) Delete(ctx context.Context, tenantID, slug string) error {
	event, err := s.get(ctx, "Delete", tenantID, slug)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("Delete: repository error for event id=%d: %v", event.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete", event.ID)

	s.logger.Info("Delete: successfully deleted event id=%d", event.ID)
	return nil
}

func (s *Service) get(ctx context.Context, op, tenantID, slug string) (*domain.Event, error) {
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

func (s *Service) invalidate(ctx context.Context, op string, eventID int64) {
	if err := s.cache.InvalidateEvent(ctx, eventID); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for event id=%d: %v", op, eventID, err)
	}
}
