package domain

import "github.com/m04kA/SMC-SlotBookingService/pkg/types"

// AnalyticsCounter number of successful bookings of an owner's time of day by a booker.
// Counters are never decremented.
type AnalyticsCounter struct {
	OwnerID      int64
	BookerID     int64
	Time         types.TimeOfDay
	BookingCount int
}

// BookerTotal total bookings of an owner's slots by one booker
type BookerTotal struct {
	BookerID int64
	Total    int
}

// SlotFrequency total bookings of an owner's time of day across all bookers
type SlotFrequency struct {
	Time  types.TimeOfDay
	Total int
}
