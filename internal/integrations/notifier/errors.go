package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrDeliveryFailed возвращается, когда webhook ответил ошибкой
	ErrDeliveryFailed = errors.New("notifier client: delivery failed")
)
