package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ScheduleType способ задания расписания события
type ScheduleType string

const (
	ScheduleRecurring ScheduleType = "RECURRING" // недельный шаблон окон
	ScheduleManual    ScheduleType = "MANUAL"    // явные сессии
)

// AccessMode режим доступа к бронированию
type AccessMode string

const (
	AccessOpen       AccessMode = "OPEN"
	AccessRestricted AccessMode = "RESTRICTED" // только по токену приглашения
	AccessClosed     AccessMode = "CLOSED"
)

func (s ScheduleType) IsValid() bool {
	return s == ScheduleRecurring || s == ScheduleManual
}

func (m AccessMode) IsValid() bool {
	return m == AccessOpen || m == AccessRestricted || m == AccessClosed
}

var (
	ErrInvalidWeekday = errors.New("domain: invalid weekday key")
	ErrInvalidWindow  = errors.New("domain: invalid time window")
)

// TimeWindow интервал приема в настенном времени часового пояса события
type TimeWindow struct {
	Start           types.TimeString `json:"start"`
	End             types.TimeString `json:"end"`
	MaxParticipants *int             `json:"max_participants,omitempty"`
}

// Validate проверяет формат времени и start < end
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	if w.MaxParticipants != nil && *w.MaxParticipants < 1 {
		return fmt.Errorf("%w: max_participants must be positive", ErrInvalidWindow)
	}
	return nil
}

// WeeklyConfig окна по дням недели: "monday" ... "sunday"
type WeeklyConfig map[string][]TimeWindow

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// WeekdayKey ключ WeeklyConfig для дня недели
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// Windows окна на день недели; ok=false, если ключа нет
func (c WeeklyConfig) Windows(d time.Weekday) ([]TimeWindow, bool) {
	windows, ok := c[WeekdayKey(d)]
	return windows, ok
}

// Validate проверяет ключи и все окна
func (c WeeklyConfig) Validate() error {
	valid := make(map[string]struct{}, len(weekdayKeys))
	for _, k := range weekdayKeys {
		valid[k] = struct{}{}
	}

	for key, windows := range c {
		if _, ok := valid[key]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, key)
		}
		for i, w := range windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", key, i, err)
			}
		}
	}
	return nil
}

// Value хранится в jsonb; строкой, т.к. lib/pq кодирует []byte как bytea
func (c WeeklyConfig) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (c *WeeklyConfig) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("domain: cannot scan %T into WeeklyConfig", src)
	}
}

// Event бронируемое событие тенанта
type Event struct {
	ID               int64
	TenantID         string
	Slug             string // уникален в рамках тенанта
	Title            string
	Timezone         string // IANA, например "Europe/Berlin"
	ScheduleType     ScheduleType
	DurationMin      int
	IntervalMin      int
	MaxParticipants  int // вместимость слота по умолчанию
	MinNoticeGeneral int // минуты
	MinNoticeFirst   int // минуты, пока до слота нет ни одной брони
	ActiveStart      *time.Time
	ActiveEnd        *time.Time
	AccessMode       AccessMode
	Location         *string
	Config           WeeklyConfig

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeLocation загружает часовой пояс события
func (e *Event) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(e.Timezone)
}

// IsWithinActiveRange проверяет, что момент t попадает в [ActiveStart, ActiveEnd]
func (e *Event) IsWithinActiveRange(t time.Time) bool {
	if e.ActiveStart != nil && t.Before(*e.ActiveStart) {
		return false
	}
	if e.ActiveEnd != nil && t.After(*e.ActiveEnd) {
		return false
	}
	return true
}

func (e *Event) IsManual() bool {
	return e.ScheduleType == ScheduleManual
}

func (e *Event) IsClosed() bool {
	return e.AccessMode == AccessClosed
}

func (e *Event) IsRestricted() bool {
	return e.AccessMode == AccessRestricted
}
