package reschedule_booking

import "time"

// Request модель запроса на перенос
type Request struct {
	ManagementToken string
	Date            time.Time // новый календарный день в поясе события
	Time            string    // RFC3339 или "HH:MM"
}

// Response модель ответа после переноса
type Response struct {
	ID            int64
	StartTime     time.Time
	EndTime       time.Time
	PreviousStart time.Time
	Location      *string
	Status        string
}
