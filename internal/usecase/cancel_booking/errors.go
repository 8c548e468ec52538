package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование с таким токеном не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrInvalidInput возвращается при некорректном токене управления
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
