package toggle_slot

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	toggleSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/toggle_slot"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Date string `json:"date"` // "2024-01-10"
	Time string `json:"time"` // "09:00"
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	SlotID    int64  `json:"slotId"`
	Available bool   `json:"available"`
	BookedBy  *int64 `json:"bookedBy"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ToggleSlotRequest) ToUseCaseRequest(ownerID int64) (*toggleSlot.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}
	return &toggleSlot.Request{OwnerID: ownerID, Date: date, Time: t}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleSlot.Response) *ToggleSlotResponse {
	return &ToggleSlotResponse{
		SlotID:    resp.SlotID,
		Available: resp.Available,
		BookedBy:  resp.BookedBy,
	}
}
