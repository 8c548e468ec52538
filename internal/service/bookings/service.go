package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		logger:      logger,
	}
}

// GetByManagementToken получает бронирование по секретному токену управления
// Используется страницей самостоятельной отмены/переноса
func (s *Service) GetByManagementToken(ctx context.Context, token string) (*models.ManagedBookingResponse, error) {
	if _, err := uuid.Parse(token); err != nil {
		s.logger.Warn("GetByManagementToken: malformed token")
		return nil, fmt.Errorf("%w: malformed management token", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByManagementToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByManagementToken: booking not found")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByManagementToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByManagementToken - repository error: %v", ErrInternal, err)
	}

	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("GetByManagementToken: event id=%d of booking id=%d not found", booking.EventID, booking.ID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByManagementToken: repository error for event id=%d: %v", booking.EventID, err)
		return nil, fmt.Errorf("%w: GetByManagementToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByManagementToken: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainManagedBooking(booking, event), nil
}

// ListEventBookings получает бронирования события за период
// По умолчанию отмененные бронирования не возвращаются
func (s *Service) ListEventBookings(ctx context.Context, req *models.ListEventBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListEventBookings: fetching bookings for event %s/%s", req.TenantID, req.Slug)
	if req.Start != "" || req.End != "" {
		logMsg += fmt.Sprintf(", period=%s to %s", req.Start, req.End)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	event, err := s.eventRepo.GetByTenantAndSlug(ctx, req.TenantID, req.Slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("ListEventBookings: event %s/%s not found", req.TenantID, req.Slug)
			return nil, ErrEventNotFound
		}
		s.logger.Error("ListEventBookings: repository error for event %s/%s: %v", req.TenantID, req.Slug, err)
		return nil, fmt.Errorf("%w: ListEventBookings - repository error: %v", ErrInternal, err)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter(event.ID)
	if err != nil {
		s.logger.Warn("ListEventBookings: invalid filter for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: start must be before end (%s >= %s)",
			ErrInvalidTimeRange, filter.From.Format(time.RFC3339), filter.To.Format(time.RFC3339))
	}

	bookings, err := s.bookingRepo.ListByEvent(ctx, filter)
	if err != nil {
		s.logger.Error("ListEventBookings: repository error for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: ListEventBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEventBookings: successfully fetched %d bookings for event id=%d", len(bookings), event.ID)
	return models.FromDomainBookingList(bookings), nil
}
