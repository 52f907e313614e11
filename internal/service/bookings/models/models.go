package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модели

// GetWaitlistRequest запрос листа ожидания слота
type GetWaitlistRequest struct {
	OwnerID int64
	Date    time.Time
	Time    types.TimeOfDay
}

// Response модели

// BookingResponse встреча пользователя в чужом расписании
type BookingResponse struct {
	SlotID    int64  `json:"slotId"`
	OwnerID   int64  `json:"ownerId"`
	OwnerName string `json:"ownerName,omitempty"`
	Date      string `json:"date"` // "2024-01-10"
	Time      string `json:"time"` // "09:00"
}

// BookingListResponse список встреч пользователя
type BookingListResponse struct {
	UserID   int64             `json:"userId"`
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// WaitlistEntryResponse позиция в листе ожидания
type WaitlistEntryResponse struct {
	BookerID int64     `json:"bookerId"`
	Priority int       `json:"priority"`
	JoinedAt time.Time `json:"joinedAt"`
}

// WaitlistResponse лист ожидания слота по возрастанию приоритета
type WaitlistResponse struct {
	SlotID   int64                   `json:"slotId"`
	OwnerID  int64                   `json:"ownerId"`
	Date     string                  `json:"date"`
	Time     string                  `json:"time"`
	BookedBy *int64                  `json:"bookedBy"`
	Entries  []WaitlistEntryResponse `json:"entries"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.UserBooking) BookingResponse {
	return BookingResponse{
		SlotID:  b.SlotID,
		OwnerID: b.OwnerID,
		Date:    b.Date.Format(domain.DateFormat),
		Time:    b.Time.String(),
	}
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(userID int64, bookings []*domain.UserBooking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{UserID: userID, Bookings: result, Total: len(result)}
}

// FromDomainWaitlist конвертирует слот и его лист ожидания в response
func FromDomainWaitlist(s *domain.Slot, entries []*domain.WaitlistEntry) *WaitlistResponse {
	result := make([]WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, WaitlistEntryResponse{
			BookerID: e.BookerID,
			Priority: e.Priority,
			JoinedAt: e.CreatedAt,
		})
	}
	return &WaitlistResponse{
		SlotID:   s.ID,
		OwnerID:  s.OwnerID,
		Date:     s.Date.Format(domain.DateFormat),
		Time:     s.Time.String(),
		BookedBy: s.BookedBy,
		Entries:  result,
	}
}
