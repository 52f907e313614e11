package claim_slot

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	claimSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
)

// ClaimSlotRequest HTTP request model
type ClaimSlotRequest struct {
	Date string `json:"date"` // "2024-01-10"
	Time string `json:"time"` // "09:00"
}

// ClaimSlotResponse HTTP response model
type ClaimSlotResponse struct {
	Status   string `json:"status"` // booked | queued
	SlotID   int64  `json:"slotId"`
	Priority *int   `json:"priority,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ClaimSlotRequest) ToUseCaseRequest(ownerID, bookerID int64) (*claimSlot.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}

	return &claimSlot.Request{
		OwnerID:  ownerID,
		BookerID: bookerID,
		Date:     date,
		Time:     t,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *claimSlot.Response) *ClaimSlotResponse {
	out := &ClaimSlotResponse{
		Status: string(resp.Status),
		SlotID: resp.SlotID,
	}
	if resp.Priority > 0 {
		priority := resp.Priority
		out.Priority = &priority
	}
	return out
}
