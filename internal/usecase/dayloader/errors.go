package dayloader

import "errors"

var (
	// ErrLoad ошибка чтения данных дня из хранилища
	ErrLoad = errors.New("dayloader: failed to load day data")

	// ErrInvalidTimeSlot время не распознано или не принадлежит дню
	ErrInvalidTimeSlot = errors.New("dayloader: invalid time slot")
)
