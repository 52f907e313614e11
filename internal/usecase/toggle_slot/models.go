package toggle_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса на переключение доступности слота владельцем
type Request struct {
	OwnerID int64
	Date    time.Time
	Time    types.TimeOfDay
}

// Response новое состояние слота
type Response struct {
	SlotID    int64
	Available bool
	BookedBy  *int64 // не меняется переключением
}
