package cancel_booking

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Date string `json:"date"` // "2024-01-10"
	Time string `json:"time"` // "09:00"
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Status         string  `json:"status"` // freed | promoted | withdrawn
	SlotID         int64   `json:"slotId"`
	PromotedUserID *int64  `json:"promotedUserId,omitempty"`
	SkippedUserIDs []int64 `json:"skippedUserIds,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(ownerID, bookerID int64) (*cancelBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	t, err := handlers.ParseTime(r.Time)
	if err != nil {
		return nil, err
	}

	return &cancelBooking.Request{
		OwnerID:  ownerID,
		BookerID: bookerID,
		Date:     date,
		Time:     t,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Status:         string(resp.Status),
		SlotID:         resp.SlotID,
		PromotedUserID: resp.PromotedUserID,
		SkippedUserIDs: resp.SkippedUserIDs,
	}
}
