package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
)

const DefaultMaxRangeDays = 62

// UseCase use case для календаря: какие дни диапазона содержат свободные слоты
type UseCase struct {
	eventRepo    EventRepository
	loader       RangeLoader
	maxRangeDays int
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(eventRepo EventRepository, loader RangeLoader, maxRangeDays int, logger Logger) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &UseCase{
		eventRepo:    eventRepo,
		loader:       loader,
		maxRangeDays: maxRangeDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает дни с бронируемыми слотами.
// Перевернутый диапазон дает пустой список, слишком длинный обрезается до maxRangeDays.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: tenant=%s, slug=%s, range=%s..%s",
		req.TenantID, req.Slug, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat))

	if strings.TrimSpace(req.TenantID) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, fmt.Errorf("%w: tenant and slug are required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	event, err := uc.eventRepo.GetByTenantAndSlug(ctx, req.TenantID, req.Slug)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("GetAvailableDates: event %s/%s not found", req.TenantID, req.Slug)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get event %s/%s: %v", req.TenantID, req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	response := &Response{Timezone: event.Timezone, Dates: []time.Time{}}

	if req.End.Before(req.Start) || event.IsClosed() {
		return response, nil
	}

	end := req.End
	days := int(end.Sub(req.Start).Hours()/24) + 1
	if days > uc.maxRangeDays {
		end = req.Start.AddDate(0, 0, uc.maxRangeDays-1)
		uc.logger.Warn("GetAvailableDates: range of %d days exceeds %d, clamped to %s..%s",
			days, uc.maxRangeDays, req.Start.Format(domain.DateFormat), end.Format(domain.DateFormat))
		days = uc.maxRangeDays
	}

	loc, err := event.TimeLocation()
	if err != nil {
		uc.logger.Error("GetAvailableDates: event id=%d has invalid timezone %q: %v", event.ID, event.Timezone, err)
		return nil, fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
	}

	inputs, err := uc.loader.Range(ctx, event, loc, req.Start, end, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to load range for event id=%d: %v", event.ID, err)
		return nil, fmt.Errorf("%w: failed to load range: %v", ErrInternal, err)
	}

	for _, in := range inputs {
		slots, err := availability.Available(in)
		if err != nil {
			uc.logger.Error("GetAvailableDates: availability failed for %s: %v", in.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: availability: %v", ErrInternal, err)
		}
		if len(slots) > 0 {
			response.Dates = append(response.Dates, in.Date)
		}
	}

	uc.logger.Info("GetAvailableDates: %d of %d days bookable for event id=%d", len(response.Dates), days, event.ID)
	return response, nil
}
