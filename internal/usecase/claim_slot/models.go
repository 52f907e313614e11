package claim_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	OwnerID  int64           // Владелец расписания
	BookerID int64           // Кто бронирует
	Date     time.Time       // Дата (без времени)
	Time     types.TimeOfDay // Время начала слота
}

// Response результат бронирования
type Response struct {
	Status   domain.ClaimStatus
	SlotID   int64
	Priority int // Позиция в листе ожидания, только для ClaimQueued
}
