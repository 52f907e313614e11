package domain

import "github.com/m04kA/SMC-SlotBookingService/pkg/types"

// Analytics
const (
	DefaultTopBookersLimit = 3
	MaxTopBookersLimit     = 100
)

// Schedule provisioning defaults (rolling week, 45-minute grid 08:00-17:45)
const (
	DefaultScheduleDays        = 7
	DefaultSlotIntervalMinutes = 45
)

var (
	DefaultDayStart = types.TimeOfDay{Hour: 8, Minute: 0}
	DefaultDayEnd   = types.TimeOfDay{Hour: 17, Minute: 45}
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
