package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ErrInvalidGrid returned for an empty or malformed slot grid definition
var ErrInvalidGrid = errors.New("domain: invalid slot grid")

// SlotGrid the set of times of day generated for each new schedule day
type SlotGrid struct {
	Start           types.TimeOfDay
	End             types.TimeOfDay // last slot start, inclusive
	IntervalMinutes int
}

// DefaultSlotGrid 08:00, 08:45, ..., 17:45
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		Start:           DefaultDayStart,
		End:             DefaultDayEnd,
		IntervalMinutes: DefaultSlotIntervalMinutes,
	}
}

// Times expands the grid into slot start times
func (g SlotGrid) Times() ([]types.TimeOfDay, error) {
	if g.IntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidGrid)
	}
	if err := g.Start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidGrid, err)
	}
	if err := g.End.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidGrid, err)
	}
	if g.End.IsBefore(g.Start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidGrid, g.End, g.Start)
	}

	times := make([]types.TimeOfDay, 0)
	for t := g.Start; !t.IsAfter(g.End); {
		times = append(times, t)
		next, err := t.AddMinutes(g.IntervalMinutes)
		if err != nil {
			break
		}
		t = next
	}
	return times, nil
}
