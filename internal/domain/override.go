package domain

import "time"

// Override изменение расписания события на конкретную дату
type Override struct {
	ID            int64
	EventID       int64
	Date          time.Time // календарный день события, полночь UTC
	IsUnavailable bool      // blackout: слотов нет независимо от шаблона
	// Config заменяет недельный шаблон на эту дату; используется только ключ дня недели даты
	Config          WeeklyConfig
	Location        *string
	MaxParticipants *int // заменяет вместимость всех окон на эту дату

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Override) HasConfig() bool {
	return o.Config != nil
}
