package cancel_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот владельца или зеркальный слот пользователя не найден
	ErrSlotNotFound = errors.New("cancel_booking: slot not found")

	// ErrNotBookedByUser возвращается, когда пользователь не держит слот и не стоит в его листе ожидания
	ErrNotBookedByUser = errors.New("cancel_booking: slot is not booked by this user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
