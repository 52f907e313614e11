package get_slot_view

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у владельца нет расписания на эту дату
	ErrScheduleNotFound = errors.New("get_slot_view: schedule day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_view: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_view: internal error")
)
