package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var (
	day     = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	nineAM  = types.MustTimeOfDay(9, 0)
	tenAM   = types.MustTimeOfDay(10, 0)
	ownerID = int64(1)
)

func seed(t *testing.T, store *Store, owner int64, date time.Time, times ...types.TimeOfDay) {
	t.Helper()
	_, err := store.Slots().CreateScheduleDay(context.Background(), owner, date, times)
	require.NoError(t, err)
}

func TestSlotRepository_ResolveAndMutate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seed(t, store, ownerID, day, tenAM, nineAM)
	slots := store.Slots()

	s, err := slots.ResolveSlot(ctx, ownerID, day, nineAM)
	require.NoError(t, err)
	assert.True(t, s.IsBookable())

	require.NoError(t, slots.SetBooked(ctx, s.ID, 2))
	st, err := slots.GetState(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, st.Available)
	require.NotNil(t, st.BookedBy)
	assert.Equal(t, int64(2), *st.BookedBy)

	available, err := slots.ToggleAvailability(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, available)

	views, err := slots.ListByOwnerAndDate(ctx, ownerID, day)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, nineAM, views[0].Time)
	assert.Equal(t, tenAM, views[1].Time)

	_, err = slots.ResolveSlot(ctx, ownerID, day, types.MustTimeOfDay(11, 0))
	assert.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestSlotRepository_ListBookedBy_NewestDateFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	next := day.AddDate(0, 0, 1)
	seed(t, store, ownerID, day, nineAM, tenAM)
	seed(t, store, ownerID, next, nineAM)
	seed(t, store, 3, day, nineAM)
	slots := store.Slots()

	book := func(owner int64, date time.Time, at types.TimeOfDay) {
		s, err := slots.ResolveSlot(ctx, owner, date, at)
		require.NoError(t, err)
		require.NoError(t, slots.SetBooked(ctx, s.ID, 2))
	}
	book(ownerID, day, tenAM)
	book(3, day, nineAM)
	book(ownerID, day, nineAM)
	book(ownerID, next, nineAM)

	bookings, err := slots.ListBookedBy(ctx, 2)
	require.NoError(t, err)
	require.Len(t, bookings, 4)

	assert.Equal(t, next, bookings[0].Date)
	assert.Equal(t, day, bookings[1].Date)
	assert.Equal(t, nineAM, bookings[1].Time)
	assert.Equal(t, ownerID, bookings[1].OwnerID)
	assert.Equal(t, int64(3), bookings[2].OwnerID)
	assert.Equal(t, tenAM, bookings[3].Time)
}

func TestSlotRepository_ScheduleDays(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	slots := store.Slots()
	seed(t, store, ownerID, day, nineAM)
	seed(t, store, ownerID, day.AddDate(0, 0, 1), nineAM)

	_, err := slots.CreateScheduleDay(ctx, ownerID, day, nil)
	assert.ErrorIs(t, err, slot.ErrScheduleDayExists)

	last, err := slots.GetLastScheduleDate(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, day.AddDate(0, 0, 1), *last)

	s, err := slots.ResolveSlot(ctx, ownerID, day, nineAM)
	require.NoError(t, err)
	_, err = store.Waitlist().Enqueue(ctx, s.ID, 5)
	require.NoError(t, err)

	deleted, err := slots.DeletePastDays(ctx, ownerID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = slots.ResolveSlot(ctx, ownerID, day, nineAM)
	assert.ErrorIs(t, err, slot.ErrSlotNotFound)
	entries, err := store.Waitlist().ListAll(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := slots.CountScheduleDays(ctx, ownerID, day)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	owners, err := slots.ListOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ownerID}, owners)
}

func TestWaitlistRepository_Priorities(t *testing.T) {
	ctx := context.Background()
	wl := NewStore().Waitlist()

	p1, err := wl.Enqueue(ctx, 7, 10)
	require.NoError(t, err)
	p2, err := wl.Enqueue(ctx, 7, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, p1)
	assert.Equal(t, 2, p2)

	_, err = wl.Enqueue(ctx, 7, 10)
	assert.ErrorIs(t, err, waitlist.ErrAlreadyQueued)

	head, err := wl.PeekHighestPriority(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(10), head.BookerID)

	require.NoError(t, wl.Dequeue(ctx, 7, 10))
	require.NoError(t, wl.Dequeue(ctx, 7, 10))

	p3, err := wl.Enqueue(ctx, 7, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, p3)

	require.NoError(t, wl.Dequeue(ctx, 7, 11))
	require.NoError(t, wl.Dequeue(ctx, 7, 12))
	_, err = wl.PeekHighestPriority(ctx, 7)
	assert.ErrorIs(t, err, waitlist.ErrWaitlistEmpty)
}

func TestAnalyticsRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	an := NewStore().Analytics()

	none, err := an.MostFrequentSlot(ctx, ownerID)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, an.RecordBooking(ctx, ownerID, 3, tenAM))
	require.NoError(t, an.RecordBooking(ctx, ownerID, 2, nineAM))
	require.NoError(t, an.RecordBooking(ctx, ownerID, 4, nineAM))
	require.NoError(t, an.RecordBooking(ctx, ownerID, 3, tenAM))
	require.NoError(t, an.RecordBooking(ctx, 99, 5, tenAM))

	count, err := an.GetCounter(ctx, ownerID, 3, tenAM)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	best, err := an.MostFrequentSlot(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, nineAM, best.Time)
	assert.Equal(t, 2, best.Total)

	top, err := an.TopBookers(ctx, ownerID, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(3), top[0].BookerID)
	assert.Equal(t, 2, top[0].Total)
	assert.Equal(t, int64(2), top[1].BookerID)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seed(t, store, ownerID, day, nineAM)
	tx := store.TxManager()
	failure := errors.New("boom")

	err := tx.DoSerializable(ctx, func(ctx context.Context) error {
		s, err := store.Slots().ResolveSlotForUpdate(ctx, ownerID, day, nineAM)
		if err != nil {
			return err
		}
		if err := store.Slots().SetBooked(ctx, s.ID, 2); err != nil {
			return err
		}
		if err := store.Analytics().RecordBooking(ctx, ownerID, 2, nineAM); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	s, err := store.Slots().ResolveSlot(ctx, ownerID, day, nineAM)
	require.NoError(t, err)
	assert.Nil(t, s.BookedBy)
	count, err := store.Analytics().GetCounter(ctx, ownerID, 2, nineAM)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTxManager_NestedCallReusesTransaction(t *testing.T) {
	tx := NewStore().TxManager()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		return tx.DoSerializable(ctx, func(context.Context) error { return nil })
	})
	assert.NoError(t, err)
}
