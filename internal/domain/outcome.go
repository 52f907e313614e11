package domain

// ClaimStatus result of a claim
type ClaimStatus string

const (
	ClaimBooked ClaimStatus = "booked"
	ClaimQueued ClaimStatus = "queued"
)

// CancelStatus result of a cancellation
type CancelStatus string

const (
	CancelFreed     CancelStatus = "freed"     // no waitlist, slot released
	CancelPromoted  CancelStatus = "promoted"  // next waitlisted booker took the slot
	CancelWithdrawn CancelStatus = "withdrawn" // caller left the waitlist, slot untouched
)
