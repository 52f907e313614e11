package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestSlotGrid_Default(t *testing.T) {
	times, err := DefaultSlotGrid().Times()
	require.NoError(t, err)

	want := []string{
		"08:00", "08:45", "09:30", "10:15", "11:00", "11:45", "12:30",
		"13:15", "14:00", "14:45", "15:30", "16:15", "17:00", "17:45",
	}
	got := make([]string, len(times))
	for i, tm := range times {
		got[i] = tm.String()
	}
	assert.Equal(t, want, got)
}

func TestSlotGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		grid SlotGrid
	}{
		{name: "zero interval", grid: SlotGrid{Start: types.MustTimeOfDay(8, 0), End: types.MustTimeOfDay(9, 0)}},
		{name: "end before start", grid: SlotGrid{Start: types.MustTimeOfDay(10, 0), End: types.MustTimeOfDay(9, 0), IntervalMinutes: 30}},
		{name: "bad start", grid: SlotGrid{Start: types.TimeOfDay{Hour: 25}, End: types.MustTimeOfDay(9, 0), IntervalMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.grid.Times()
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestSlotGrid_StopsAtMidnight(t *testing.T) {
	grid := SlotGrid{Start: types.MustTimeOfDay(23, 0), End: types.MustTimeOfDay(23, 59), IntervalMinutes: 45}

	times, err := grid.Times()
	require.NoError(t, err)
	assert.Equal(t, []types.TimeOfDay{types.MustTimeOfDay(23, 0), types.MustTimeOfDay(23, 45)}, times)
}

func TestSlot_States(t *testing.T) {
	holder := int64(7)

	free := &Slot{Available: true}
	assert.True(t, free.IsBookable())
	assert.False(t, free.IsBooked())

	booked := &Slot{Available: true, BookedBy: &holder}
	assert.False(t, booked.IsBookable())
	assert.True(t, booked.IsBooked())
	assert.True(t, booked.IsBookedBy(7))
	assert.False(t, booked.IsBookedBy(8))

	blocked := &Slot{Available: false}
	assert.False(t, blocked.IsBookable())
	assert.False(t, blocked.IsBooked())
}
