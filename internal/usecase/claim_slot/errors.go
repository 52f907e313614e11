package claim_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот владельца или зеркальный слот пользователя не найден
	ErrSlotNotFound = errors.New("claim_slot: slot not found")

	// ErrSlotUnavailable возвращается, когда владелец закрыл свободный слот
	ErrSlotUnavailable = errors.New("claim_slot: slot is blocked by owner")

	// ErrBookerUnavailable возвращается, когда у пользователя занято это же время в своём расписании
	ErrBookerUnavailable = errors.New("claim_slot: booker is not available at this time")

	// ErrAlreadyQueued возвращается, когда пользователь уже в листе ожидания слота
	ErrAlreadyQueued = errors.New("claim_slot: booker already queued for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("claim_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_slot: internal error")
)
