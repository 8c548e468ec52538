package override

import "errors"

var (
	// ErrOverrideNotFound на дату нет override'а
	ErrOverrideNotFound = errors.New("override.repository: override not found")

	ErrBuildQuery = errors.New("override.repository: failed to build query")
	ErrExecQuery  = errors.New("override.repository: failed to execute query")
	ErrScanRow    = errors.New("override.repository: failed to scan row")
)
