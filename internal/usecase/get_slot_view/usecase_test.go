package get_slot_view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestExecute_ReturnsOrderedDay(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	_, err := store.Slots().CreateScheduleDay(ctx, 1, date, []types.TimeOfDay{
		types.MustTimeOfDay(9, 45), types.MustTimeOfDay(8, 0), types.MustTimeOfDay(9, 0),
	})
	require.NoError(t, err)

	nine, err := store.Slots().ResolveSlot(ctx, 1, date, types.MustTimeOfDay(9, 0))
	require.NoError(t, err)
	require.NoError(t, store.Slots().SetBooked(ctx, nine.ID, 2))
	_, err = store.Waitlist().Enqueue(ctx, nine.ID, 3)
	require.NoError(t, err)

	uc := NewUseCase(store.Slots(), store.TxManager(), logger.NewDiscard())
	resp, err := uc.Execute(ctx, &Request{OwnerID: 1, Date: date.Add(15 * time.Hour)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "08:00", resp.Slots[0].Time.String())
	assert.Equal(t, "09:00", resp.Slots[1].Time.String())
	assert.Equal(t, "09:45", resp.Slots[2].Time.String())

	assert.Equal(t, 1, resp.Slots[1].WaitlistCount)
	require.NotNil(t, resp.Slots[1].BookedBy)
	assert.Equal(t, int64(2), *resp.Slots[1].BookedBy)
	assert.Nil(t, resp.Slots[0].BookedBy)
	assert.Equal(t, date, resp.Date)
}

func TestExecute_Errors(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Slots(), store.TxManager(), logger.NewDiscard())

	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, Date: time.Now()})
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = uc.Execute(context.Background(), &Request{OwnerID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
