package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование с таким токеном не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingCancelled возвращается при попытке перенести отменённую бронь
	ErrBookingCancelled = errors.New("reschedule_booking: booking is cancelled")

	// ErrEventClosed возвращается, когда событие закрыто для бронирования
	ErrEventClosed = errors.New("reschedule_booking: event is closed")

	// ErrInvalidTimeSlot возвращается, когда новое время не является слотом дня
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrOutsideNotice возвращается, когда новый слот нарушает уведомление или активный период
	ErrOutsideNotice = errors.New("reschedule_booking: slot is outside the booking notice or active range")

	// ErrSlotFull возвращается, когда в новом слоте нет мест
	ErrSlotFull = errors.New("reschedule_booking: slot is full")

	// ErrSlotBusy возвращается, когда перенос не прошел из-за конкурентных транзакций
	ErrSlotBusy = errors.New("reschedule_booking: slot is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
