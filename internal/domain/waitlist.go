package domain

import "time"

// WaitlistEntry a booker waiting for a taken slot.
// Lower Priority = joined earlier = promoted first.
type WaitlistEntry struct {
	SlotID    int64
	BookerID  int64
	Priority  int
	CreatedAt time.Time
}
