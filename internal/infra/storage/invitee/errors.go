package invitee

import "errors"

var (
	// ErrInviteeNotFound приглашение с таким токеном не найдено
	ErrInviteeNotFound = errors.New("invitee.repository: invitee not found")

	// ErrTokenAlreadyExists коллизия сгенерированного токена
	ErrTokenAlreadyExists = errors.New("invitee.repository: token already exists")

	ErrBuildQuery = errors.New("invitee.repository: failed to build query")
	ErrExecQuery  = errors.New("invitee.repository: failed to execute query")
	ErrScanRow    = errors.New("invitee.repository: failed to scan row")
)
