package invitees

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("invitees: event not found")

	// ErrInviteeNotFound возвращается, когда приглашение не найдено
	ErrInviteeNotFound = errors.New("invitees: invitee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invitees: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("invitees: internal error")
)
