package create_booking

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("create_booking: event not found")

	// ErrEventClosed возвращается, когда событие закрыто для бронирования
	ErrEventClosed = errors.New("create_booking: event is closed")

	// ErrAccessDenied возвращается, когда для RESTRICTED события не передан токен
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidToken возвращается, когда токен приглашения не найден или отозван
	ErrInvalidToken = errors.New("create_booking: invalid invitation token")

	// ErrTokenAlreadyUsed возвращается, когда по токену уже есть бронь
	ErrTokenAlreadyUsed = errors.New("create_booking: invitation token already used")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не является слотом дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrOutsideNotice возвращается, когда слот нарушает минимальное уведомление или активный период
	ErrOutsideNotice = errors.New("create_booking: slot is outside the booking notice or active range")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrSlotBusy возвращается, когда допуск не прошел из-за конкурентных транзакций
	ErrSlotBusy = errors.New("create_booking: slot is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
