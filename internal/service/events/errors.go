package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("events: event not found")

	// ErrEventAlreadyExists возвращается, когда slug уже занят в тенанте
	ErrEventAlreadyExists = errors.New("events: event with this slug already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("events: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("events: internal error")
)
