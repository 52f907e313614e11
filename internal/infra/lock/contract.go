package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Locker взаимное исключение по ключу.
// Acquire блокируется до захвата ключа, таймаута или отмены ctx и возвращает функцию освобождения.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// SlotKey ключ блокировки слота (owner, date, time)
func SlotKey(ownerID int64, date time.Time, t types.TimeOfDay) string {
	return fmt.Sprintf("slot:%d:%s:%s", ownerID, date.Format(domain.DateFormat), t.String())
}
