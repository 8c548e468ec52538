package event

import "errors"

var (
	// ErrEventNotFound событие не найдено
	ErrEventNotFound = errors.New("event.repository: event not found")

	// ErrEventAlreadyExists slug уже занят в рамках тенанта
	ErrEventAlreadyExists = errors.New("event.repository: event with this slug already exists")

	ErrBuildQuery = errors.New("event.repository: failed to build query")
	ErrExecQuery  = errors.New("event.repository: failed to execute query")
	ErrScanRow    = errors.New("event.repository: failed to scan row")
)
