package domain

import "time"

// Slot кандидат для бронирования
type Slot struct {
	Start     time.Time // UTC
	End       time.Time // UTC
	Capacity  int
	Booked    int
	Location  *string
	SessionID *int64 // только для MANUAL
}

// Available свободные места
func (s *Slot) Available() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

func (s *Slot) IsFull() bool {
	return s.Available() == 0
}
