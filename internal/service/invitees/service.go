package invitees

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	inviteeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/invitee"
	"github.com/m04kA/SMC-SchedulingService/internal/service/invitees/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/tokengen"
)

// maxTokenAttempts попыток сгенерировать уникальный токен
const maxTokenAttempts = 5

// Service сервис управления приглашениями RESTRICTED событий
type Service struct {
	eventRepo   EventRepository
	inviteeRepo InviteeRepository
	generate    TokenGenerator
	logger      Logger
}

// NewService создает новый экземпляр сервиса приглашений
func NewService(eventRepo EventRepository, inviteeRepo InviteeRepository, logger Logger) *Service {
	return &Service{
		eventRepo:   eventRepo,
		inviteeRepo: inviteeRepo,
		generate: func() (string, error) {
			return tokengen.Generate(tokengen.DefaultLength)
		},
		logger: logger,
	}
}

// WithTokenGenerator подменяет генератор токенов (для тестов)
func (s *Service) WithTokenGenerator(gen TokenGenerator) *Service {
	s.generate = gen
	return s
}

// Create выпускает новое приглашение со случайным токеном
func (s *Service) Create(ctx context.Context, tenantID, slug string, req *models.CreateInviteeRequest) (*models.InviteeResponse, error) {
	s.logger.Info("Create: creating invitee for event %s/%s", tenantID, slug)

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		req.Email = &email
	}

	event, err := s.getEvent(ctx, "Create", tenantID, slug)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := s.generate()
		if err != nil {
			s.logger.Error("Create: failed to generate token: %v", err)
			return nil, fmt.Errorf("%w: Create - generate token: %v", ErrInternal, err)
		}

		created, err := s.inviteeRepo.Create(ctx, &domain.Invitee{
			EventID: event.ID,
			Token:   token,
			Email:   req.Email,
			Status:  domain.InviteeActive,
		})
		if err == nil {
			s.logger.Info("Create: successfully created invitee id=%d for event id=%d", created.ID, event.ID)
			return models.FromDomainInvitee(created), nil
		}
		if !errors.Is(err, inviteeRepo.ErrTokenAlreadyExists) {
			s.logger.Error("Create: repository error for event id=%d: %v", event.ID, err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		s.logger.Warn("Create: token collision, attempt %d/%d", attempt, maxTokenAttempts)
	}

	s.logger.Error("Create: could not generate a unique token after %d attempts", maxTokenAttempts)
	return nil, fmt.Errorf("%w: Create - token collisions exhausted", ErrInternal)
}

// List приглашения события
func (s *Service) List(ctx context.Context, tenantID, slug string) (*models.InviteeListResponse, error) {
	event, err := s.getEvent(ctx, "List", tenantID, slug)
	if err != nil {
		return nil, err
	}

	invitees, err := s.inviteeRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("List: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d invitees for event id=%d", len(invitees), event.ID)
	return models.FromDomainInviteeList(invitees), nil
}

// UpdateStatus меняет статус приглашения (например, отзыв)
func (s *Service) UpdateStatus(ctx context.Context, tenantID, slug, token string, req *models.UpdateInviteeStatusRequest) (*models.InviteeResponse, error) {
	s.logger.Info("UpdateStatus: setting status=%s for invitee of event %s/%s", req.Status, tenantID, slug)

	status := domain.InviteeStatus(strings.ToUpper(req.Status))
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: status must be ACTIVE, USED or REVOKED", ErrInvalidInput)
	}

	event, err := s.getEvent(ctx, "UpdateStatus", tenantID, slug)
	if err != nil {
		return nil, err
	}

	invitee, err := s.inviteeRepo.GetByToken(ctx, event.ID, token)
	if err != nil {
		return nil, s.mapInviteeError("UpdateStatus", err)
	}

	if err := s.inviteeRepo.UpdateStatus(ctx, invitee.ID, status); err != nil {
		return nil, s.mapInviteeError("UpdateStatus", err)
	}
	invitee.Status = status

	s.logger.Info("UpdateStatus: invitee id=%d is now %s", invitee.ID, status)
	return models.FromDomainInvitee(invitee), nil
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

func (s *Service) mapInviteeError(op string, err error) error {
	if errors.Is(err, inviteeRepo.ErrInviteeNotFound) {
		s.logger.Warn("%s: invitee not found", op)
		return ErrInviteeNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
