package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	OwnerID  int64           // Владелец расписания
	BookerID int64           // Кто отменяет
	Date     time.Time       // Дата (без времени)
	Time     types.TimeOfDay // Время начала слота
}

// Response результат отмены
type Response struct {
	Status         domain.CancelStatus
	SlotID         int64
	OwnerID        int64
	Date           time.Time
	Time           types.TimeOfDay
	PromotedUserID *int64  // Только для CancelPromoted
	SkippedUserIDs []int64 // Кто выбыл из очереди, так как занят в это время
}
