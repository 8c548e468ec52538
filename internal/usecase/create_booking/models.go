package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	TenantID string
	Slug     string
	Date     time.Time // календарный день в поясе события
	Time     string    // RFC3339 или "HH:MM" по поясу события
	Name     string
	Email    string
	Notes    *string
	Token    *string // токен приглашения для RESTRICTED событий
	LabelID  *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	EventSlug       string
	StartTime       time.Time
	EndTime         time.Time
	Location        *string
	Status          string
	ManagementToken string
	CreatedAt       time.Time
}
