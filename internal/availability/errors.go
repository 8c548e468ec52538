package availability

import "errors"

var (
	// ErrInvalidTimezone часовой пояс события не найден в базе IANA
	ErrInvalidTimezone = errors.New("availability: invalid event timezone")

	// ErrSlotNotOffered запрошенный момент не совпадает ни с одним слотом дня
	ErrSlotNotOffered = errors.New("availability: requested time is not an offered slot")

	// ErrOutsideNotice слот нарушает минимальное время уведомления или вне активного периода
	ErrOutsideNotice = errors.New("availability: slot violates notice policy or active range")

	// ErrSlotFull все места в слоте заняты
	ErrSlotFull = errors.New("availability: slot is full")
)
