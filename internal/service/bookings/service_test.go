package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var (
	day    = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	nineAM = types.MustTimeOfDay(9, 0)
	tenAM  = types.MustTimeOfDay(10, 0)
)

type stubUsers struct {
	calls int
}

func (s *stubUsers) GetUserWithGracefulDegradation(_ context.Context, id int64) (*userservice.User, error) {
	s.calls++
	if id == 1 {
		return &userservice.User{ID: 1, Name: "Olga"}, nil
	}
	return nil, userservice.ErrUserNotFound
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, owner := range []int64{1, 2, 5} {
		_, err := store.Slots().CreateScheduleDay(ctx, owner, day, []types.TimeOfDay{nineAM, tenAM})
		require.NoError(t, err)
	}
	return store
}

func book(t *testing.T, store *memory.Store, owner, booker int64, at types.TimeOfDay) int64 {
	t.Helper()
	s, err := store.Slots().ResolveSlot(context.Background(), owner, day, at)
	require.NoError(t, err)
	require.NoError(t, store.Slots().SetBooked(context.Background(), s.ID, booker))
	return s.ID
}

func TestGetUserBookings(t *testing.T) {
	store := seed(t)
	book(t, store, 1, 2, tenAM)
	book(t, store, 1, 2, nineAM)
	book(t, store, 5, 2, tenAM)

	users := &stubUsers{}
	svc := NewService(store.Slots(), store.Waitlist(), users, logger.NewDiscard())

	resp, err := svc.GetUserBookings(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	assert.Equal(t, "09:00", resp.Bookings[0].Time)
	assert.Equal(t, "Olga", resp.Bookings[0].OwnerName)
	assert.Equal(t, "2024-01-10", resp.Bookings[0].Date)
	assert.Equal(t, "Olga", resp.Bookings[1].OwnerName)
	assert.Empty(t, resp.Bookings[2].OwnerName)
	assert.Equal(t, 2, users.calls)
}

func TestGetWaitlist(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	slotID := book(t, store, 1, 2, nineAM)
	_, err := store.Waitlist().Enqueue(ctx, slotID, 5)
	require.NoError(t, err)
	_, err = store.Waitlist().Enqueue(ctx, slotID, 7)
	require.NoError(t, err)

	svc := NewService(store.Slots(), store.Waitlist(), nil, logger.NewDiscard())

	resp, err := svc.GetWaitlist(ctx, &models.GetWaitlistRequest{OwnerID: 1, Date: day, Time: nineAM})
	require.NoError(t, err)
	require.NotNil(t, resp.BookedBy)
	assert.Equal(t, int64(2), *resp.BookedBy)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, int64(5), resp.Entries[0].BookerID)
	assert.Equal(t, 1, resp.Entries[0].Priority)
	assert.Equal(t, 2, resp.Entries[1].Priority)

	_, err = svc.GetWaitlist(ctx, &models.GetWaitlistRequest{OwnerID: 1, Date: day, Time: types.MustTimeOfDay(11, 0)})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.GetWaitlist(ctx, &models.GetWaitlistRequest{OwnerID: 1, Time: nineAM})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
