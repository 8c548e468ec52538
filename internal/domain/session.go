package domain

import "time"

// EventSession разовая сессия события в режиме MANUAL
type EventSession struct {
	ID              int64
	EventID         int64
	StartTime       time.Time // UTC
	EndTime         time.Time // UTC
	MaxParticipants int       // <= 0 - берется вместимость события
	Location        *string
	HostName        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
