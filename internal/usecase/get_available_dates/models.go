package get_available_dates

import "time"

// Request диапазон календарных дней [Start, End] в поясе события
type Request struct {
	TenantID string
	Slug     string
	Start    time.Time
	End      time.Time
}

// Response дни, в которых есть хотя бы один бронируемый слот
type Response struct {
	Timezone string
	Dates    []time.Time
}
