package session

import "errors"

var (
	// ErrSessionNotFound сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSessionAlreadyExists у события уже есть сессия с таким временем начала
	ErrSessionAlreadyExists = errors.New("session.repository: session with this start time already exists")

	ErrBuildQuery = errors.New("session.repository: failed to build query")
	ErrExecQuery  = errors.New("session.repository: failed to execute query")
	ErrScanRow    = errors.New("session.repository: failed to scan row")
)
