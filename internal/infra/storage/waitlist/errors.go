package waitlist

import "errors"

var (
	// ErrAlreadyQueued возвращается, когда пользователь уже стоит в листе ожидания этого слота
	ErrAlreadyQueued = errors.New("waitlist.repository: booker already queued for slot")

	// ErrWaitlistEmpty возвращается, когда лист ожидания слота пуст
	ErrWaitlistEmpty = errors.New("waitlist.repository: waitlist is empty")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
