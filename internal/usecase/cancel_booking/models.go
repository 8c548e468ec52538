package cancel_booking

import "time"

// Request модель запроса на отмену
type Request struct {
	ManagementToken string
}

// Response модель ответа после отмены
type Response struct {
	ID               int64
	Status           string
	StartTime        time.Time
	CancelledAt      *time.Time
	AlreadyCancelled bool // повторная отмена ничего не меняет
}
