package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ScheduleDay a single calendar day published by an owner.
// At most one day exists per (OwnerID, Date).
type ScheduleDay struct {
	ID        int64
	OwnerID   int64
	Date      time.Time
	CreatedAt time.Time
}

// Slot a fixed (owner, date, time-of-day) calendar unit
type Slot struct {
	ID         int64
	ScheduleID int64
	OwnerID    int64
	Date       time.Time
	Time       types.TimeOfDay
	Available  bool
	BookedBy   *int64 // nil = nobody holds the slot
}

// IsBookable returns true if the slot can be claimed directly
func (s *Slot) IsBookable() bool {
	return s.Available && s.BookedBy == nil
}

// IsBooked returns true if somebody holds the slot
func (s *Slot) IsBooked() bool {
	return s.BookedBy != nil
}

// IsBookedBy returns true if the slot is held by userID
func (s *Slot) IsBookedBy(userID int64) bool {
	return s.BookedBy != nil && *s.BookedBy == userID
}

// State returns the mutable part of the slot
func (s *Slot) State() SlotState {
	return SlotState{Available: s.Available, BookedBy: s.BookedBy}
}

// SlotState availability and holder of a slot
type SlotState struct {
	Available bool
	BookedBy  *int64
}

// SlotView a slot as shown in the owner's day view
type SlotView struct {
	SlotID        int64
	Time          types.TimeOfDay
	Available     bool
	BookedBy      *int64
	WaitlistCount int
}

// UserBooking an appointment held by a booker in someone else's calendar
type UserBooking struct {
	SlotID  int64
	OwnerID int64
	Date    time.Time
	Time    types.TimeOfDay
}

// DateOnly normalizes t to midnight UTC of the same calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
