package lock

import "errors"

var (
	// ErrLockTimeout возвращается, если ключ не удалось захватить за отведённое время
	ErrLockTimeout = errors.New("lock: acquire timeout")

	// ErrLockBackend возвращается при ошибке хранилища блокировок
	ErrLockBackend = errors.New("lock: backend error")
)
