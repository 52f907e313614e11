package get_slot_view

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	getSlotView "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
)

// SlotResponse слот в дне владельца
type SlotResponse struct {
	SlotID        int64  `json:"slotId"`
	Time          string `json:"time"` // "09:00"
	Available     bool   `json:"available"`
	BookedBy      *int64 `json:"bookedBy"`
	WaitlistCount int    `json:"waitlistCount"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	OwnerID int64          `json:"ownerId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotView.Response) *ScheduleResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			SlotID:        s.SlotID,
			Time:          s.Time.String(),
			Available:     s.Available,
			BookedBy:      s.BookedBy,
			WaitlistCount: s.WaitlistCount,
		})
	}

	return &ScheduleResponse{
		OwnerID: resp.OwnerID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
