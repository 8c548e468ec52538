package notifications

import "errors"

var (
	ErrDial    = errors.New("notifications: failed to connect to broker")
	ErrChannel = errors.New("notifications: failed to open channel")
	ErrDeclare = errors.New("notifications: failed to declare queue")
	ErrMarshal = errors.New("notifications: failed to marshal event")
	ErrPublish = errors.New("notifications: failed to publish event")
	ErrClosed  = errors.New("notifications: publisher is closed")
)
