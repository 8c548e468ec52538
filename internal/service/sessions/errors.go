package sessions

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("sessions: event not found")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrSessionAlreadyExists возвращается, когда у события уже есть сессия с таким началом
	ErrSessionAlreadyExists = errors.New("sessions: session with this start time already exists")

	// ErrNotManualEvent возвращается для событий с недельным расписанием
	ErrNotManualEvent = errors.New("sessions: event schedule is not MANUAL")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrInvalidDate возвращается при некорректном диапазоне дат
	ErrInvalidDate = errors.New("sessions: invalid date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)
