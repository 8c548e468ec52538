package domain

import "time"

// Значения по умолчанию для новых событий
const (
	DefaultDurationMinutes  = 30
	DefaultIntervalMinutes  = 30
	DefaultMaxParticipants  = 1
	DefaultMinNoticeGeneral = 60
	DefaultMinNoticeFirst   = 60
	DefaultTimezone         = "UTC"
)

// Ограничения бизнес-валидации
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 24 * 60
	MinIntervalMinutes = 5
	MaxParticipants    = 1000
	MaxNoticeMinutes   = 60 * 24 * 30
	MaxNotesLength     = 1000
	MaxNameLength      = 200
	MaxSlugLength      = 100
)

// Форматы времени на границе API
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ParseDate парсит "YYYY-MM-DD" в полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// LocalDate календарный день момента t в часовом поясе loc (полночь UTC)
func LocalDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBounds границы календарного дня date в поясе loc как полуинтервал [from, to) в UTC
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	to := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return from.UTC(), to.UTC()
}
