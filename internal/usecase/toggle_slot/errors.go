package toggle_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот владельца не найден
	ErrSlotNotFound = errors.New("toggle_slot: slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("toggle_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("toggle_slot: internal error")
)
