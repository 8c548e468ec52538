package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	sessionRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

const maxListRangeDays = 366

// Service сервис управления сессиями MANUAL событий
type Service struct {
	eventRepo   EventRepository
	sessionRepo SessionRepository
	cache       SlotsCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(eventRepo EventRepository, sessionRepo SessionRepository, cache SlotsCache, logger Logger) *Service {
	return &Service{
		eventRepo:   eventRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List сессии, начинающиеся в локальные дни [Start, End] события
func (s *Service) List(ctx context.Context, tenantID, slug string, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("List: fetching sessions for event %s/%s, range=%s..%s", tenantID, slug, req.Start, req.End)

	startDate, err := domain.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidDate, err)
	}
	endDate, err := domain.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidDate, err)
	}
	if endDate.Before(startDate) || endDate.Sub(startDate) > maxListRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must be ordered and at most %d days", ErrInvalidDate, maxListRangeDays)
	}

	event, loc, err := s.getEvent(ctx, "List", tenantID, slug)
	if err != nil {
		return nil, err
	}

	from, _ := domain.DayBounds(startDate, loc)
	_, to := domain.DayBounds(endDate, loc)

	sessions, err := s.sessionRepo.ListByEventInRange(ctx, event.ID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d sessions for event id=%d", len(sessions), event.ID)
	return models.FromDomainSessionList(sessions), nil
}

// Create создает сессию MANUAL события
func (s *Service) Create(ctx context.Context, tenantID, slug string, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Create: creating session for event %s/%s, start=%s", tenantID, slug, req.StartTime.Format(time.RFC3339))

	event, loc, err := s.getManualEvent(ctx, "Create", tenantID, slug)
	if err != nil {
		return nil, err
	}

	session := req.ToDomain(event.ID)
	if err := validateSession(session); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionAlreadyExists) {
			s.logger.Warn("Create: session at %s already exists for event id=%d", session.StartTime.Format(time.RFC3339), event.ID)
			return nil, ErrSessionAlreadyExists
		}
		s.logger.Error("Create: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create", event.ID, domain.LocalDate(created.StartTime, loc))

	s.logger.Info("Create: successfully created session id=%d for event id=%d", created.ID, event.ID)
	return models.FromDomainSession(created), nil
}

// Update частично обновляет сессию
func (s *Service) Update(ctx context.Context, tenantID, slug string, sessionID int64, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Update: updating session id=%d for event %s/%s", sessionID, tenantID, slug)

	event, loc, err := s.getManualEvent(ctx, "Update", tenantID, slug)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, event.ID, sessionID)
	if err != nil {
		return nil, s.mapSessionError("Update", sessionID, err)
	}
	previousStart := session.StartTime

	req.ApplyTo(session)
	if err := validateSession(session); err != nil {
		s.logger.Warn("Update: validation failed for session id=%d: %v", sessionID, err)
		return nil, err
	}

	updated, err := s.sessionRepo.Update(ctx, session)
	if err != nil {
		return nil, s.mapSessionError("Update", sessionID, err)
	}

	// сбрасываем и старый, и новый день
	oldDate := domain.LocalDate(previousStart, loc)
	newDate := domain.LocalDate(updated.StartTime, loc)
	s.invalidate(ctx, "Update", event.ID, oldDate)
	if !newDate.Equal(oldDate) {
		s.invalidate(ctx, "Update", event.ID, newDate)
	}

	s.logger.Info("Update: successfully updated session id=%d", sessionID)
	return models.FromDomainSession(updated), nil
}

// Delete удаляет сессию
func (s *Service) Delete(ctx context.Context, tenantID, slug string, sessionID int64) error {
	s.logger.Info("Delete: removing session id=%d for event %s/%s", sessionID, tenantID, slug)

	event, loc, err := s.getEvent(ctx, "Delete", tenantID, slug)
	if err != nil {
		return err
	}

	session, err := s.sessionRepo.GetByID(ctx, event.ID, sessionID)
	if err != nil {
		return s.mapSessionError("Delete", sessionID, err)
	}

	if err := s.sessionRepo.Delete(ctx, event.ID, sessionID); err != nil {
		return s.mapSessionError("Delete", sessionID, err)
	}

	s.invalidate(ctx, "Delete", event.ID, domain.LocalDate(session.StartTime, loc))

	s.logger.Info("Delete: successfully removed session id=%d", sessionID)
	return nil
}

func validateSession(s *domain.EventSession) error {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidInput)
	}
	if !s.StartTime.Before(s.EndTime) {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	if s.MaxParticipants < 0 || s.MaxParticipants > domain.MaxParticipants {
		return fmt.Errorf("%w: max_participants must be between 1 and %d", ErrInvalidInput, domain.MaxParticipants)
	}
	return nil
}

func (s *Service) getManualEvent(ctx context.Context, op, tenantID, slug string) (*domain.Event, *time.Location, error) {
	event, loc, err := s.getEvent(ctx, op, tenantID, slug)
	if err != nil {
		return nil, nil, err
	}
	if !event.IsManual() {
		s.logger.Warn("%s: event id=%d is not MANUAL", op, event.ID)
		return nil, nil, ErrNotManualEvent
	}
	return event, loc, nil
}

func (s *Service) getEvent(ctx context.Context, op, tenantID, slug string) (*domain.Event, *time.Location, error) {
	event, err := s.eventRepo.GetByTenantAndSlug(ctx, tenantID, slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("%s: event %s/%s not found", op, tenantID, slug)
			return nil, nil, ErrEventNotFound
		}
		s.logger.Error("%s: repository error for event %s/%s: %v", op, tenantID, slug, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	loc, err := event.TimeLocation()
	if err != nil {
		s.logger.Error("%s: event id=%d has invalid timezone %q: %v", op, event.ID, event.Timezone, err)
		return nil, nil, fmt.Errorf("%w: %s - load timezone: %v", ErrInternal, op, err)
	}
	return event, loc, nil
}

func (s *Service) mapSessionError(op string, sessionID int64, err error) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		s.logger.Warn("%s: session id=%d not found", op, sessionID)
		return ErrSessionNotFound
	case errors.Is(err, sessionRepo.ErrSessionAlreadyExists):
		s.logger.Warn("%s: start time of session id=%d collides with another session", op, sessionID)
		return ErrSessionAlreadyExists
	default:
		s.logger.Error("%s: repository error for session id=%d: %v", op, sessionID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) invalidate(ctx context.Context, op string, eventID int64, date time.Time) {
	if err := s.cache.InvalidateDate(ctx, eventID, date); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for event id=%d, date=%s: %v",
			op, eventID, date.Format(domain.DateFormat), err)
	}
}
