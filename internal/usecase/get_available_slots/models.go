package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID string
	Slug     string
	Date     time.Time // календарный день в поясе события (полночь UTC)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time
	Timezone string
	Slots    []Slot // по возрастанию начала
}

// Slot модель бронируемого слота
type Slot struct {
	Start          time.Time // UTC
	End            time.Time // UTC
	AvailableSpots int
	TotalSpots     int
	Location       *string
}
