package overrides

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("overrides: event not found")

	// ErrOverrideNotFound возвращается, когда на дату нет override'а
	ErrOverrideNotFound = errors.New("overrides: override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("overrides: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате или диапазоне дат
	ErrInvalidDate = errors.New("overrides: invalid date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("overrides: internal error")
)
