package slotlock

import "errors"

var (
	// ErrNoTransaction блокировка слота имеет смысл только внутри транзакции
	ErrNoTransaction = errors.New("slotlock.repository: slot lock requires a transaction")

	ErrBuildQuery = errors.New("slotlock.repository: failed to build query")
	ErrExecQuery  = errors.New("slotlock.repository: failed to execute query")
)
