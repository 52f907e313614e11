package notifications

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Event исход бронирования, о котором нужно сообщить пользователю
type Event struct {
	Kind      notifier.Kind
	Recipient int64 // кому отправить
	OwnerID   int64
	Date      time.Time
	Time      types.TimeOfDay
}
