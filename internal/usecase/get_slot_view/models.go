package get_slot_view

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Request модель запроса на получение дня владельца
type Request struct {
	OwnerID int64
	Date    time.Time // Дата (без времени)
}

// Response слоты дня по возрастанию времени
type Response struct {
	OwnerID int64
	Date    time.Time
	Slots   []*domain.SlotView
}
