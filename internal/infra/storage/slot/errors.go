package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда у владельца нет слота на указанные дату и время
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrScheduleNotFound возвращается, когда у владельца нет расписания на указанную дату
	ErrScheduleNotFound = errors.New("slot.repository: schedule day not found")

	// ErrScheduleDayExists возвращается при попытке повторно создать день расписания
	ErrScheduleDayExists = errors.New("slot.repository: schedule day already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
