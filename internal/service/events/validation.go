package events

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validateSlug slug: строчные латинские буквы, цифры и дефисы
func validateSlug(slug string) error {
	if slug == "" || len(slug) > domain.MaxSlugLength || !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug must match %s and be at most %d characters", ErrInvalidInput, slugPattern, domain.MaxSlugLength)
	}
	return nil
}

// validateEvent проверяет настраиваемые поля события
func validateEvent(e *domain.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(e.Title) > domain.MaxNameLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if _, err := time.LoadLocation(e.Timezone); err != nil || e.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, e.Timezone)
	}

	if !e.ScheduleType.IsValid() {
		return fmt.Errorf("%w: schedule_type must be RECURRING or MANUAL", ErrInvalidInput)
	}
	if !e.AccessMode.IsValid() {
		return fmt.Errorf("%w: access_mode must be OPEN, RESTRICTED or CLOSED", ErrInvalidInput)
	}

	if e.DurationMin < domain.MinDurationMinutes || e.DurationMin > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration_min must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if e.IntervalMin < domain.MinIntervalMinutes || e.IntervalMin > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: interval_min must be between %d and %d",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxDurationMinutes)
	}

	if e.MaxParticipants < 1 || e.MaxParticipants > domain.MaxParticipants {
		return fmt.Errorf("%w: max_participants must be between 1 and %d", ErrInvalidInput, domain.MaxParticipants)
	}

	if e.MinNoticeGeneral < 0 || e.MinNoticeGeneral > domain.MaxNoticeMinutes ||
		e.MinNoticeFirst < 0 || e.MinNoticeFirst > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: notice must be between 0 and %d minutes", ErrInvalidInput, domain.MaxNoticeMinutes)
	}

	if e.ActiveStart != nil && e.ActiveEnd != nil && e.ActiveStart.After(*e.ActiveEnd) {
		return fmt.Errorf("%w: active_start must not be after active_end", ErrInvalidInput)
	}

	if err := e.Config.Validate(); err != nil {
		return fmt.Errorf("%w: config: %v", ErrInvalidInput, err)
	}

	return nil
}
