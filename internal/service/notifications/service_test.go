package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type recordingSink struct {
	mu   sync.Mutex
	sent []*notifier.Notification
	err  error
}

func (s *recordingSink) Notify(_ context.Context, n *notifier.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.err
}

type stubUsers map[int64]userservice.User

func (s stubUsers) GetUserWithGracefulDegradation(_ context.Context, id int64) (*userservice.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return &u, nil
}

var event = Event{
	Kind:      notifier.KindPromoted,
	Recipient: 3,
	OwnerID:   1,
	Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	Time:      types.MustTimeOfDay(9, 0),
}

func TestSend_EnrichesWithUserDirectory(t *testing.T) {
	sink := &recordingSink{}
	users := stubUsers{
		1: {ID: 1, Name: "Olga"},
		3: {ID: 3, Name: "Boris", Email: "boris@example.com"},
	}
	d := NewDispatcher(users, sink, time.Second, logger.NewDiscard())

	require.NoError(t, d.Send(context.Background(), event))
	require.Len(t, sink.sent, 1)

	n := sink.sent[0]
	assert.Equal(t, "Boris", n.Name)
	assert.Equal(t, "boris@example.com", n.Email)
	assert.Equal(t, "Olga", n.OwnerName)
	assert.Equal(t, "2024-01-10", n.Date)
	assert.Equal(t, "09:00", n.Time)
	assert.Contains(t, n.Message, "у Olga")
}

func TestDispatch_FailureIsOnlyLogged(t *testing.T) {
	sink := &recordingSink{err: errors.New("webhook down")}
	d := NewDispatcher(nil, sink, time.Second, logger.NewDiscard())

	d.Dispatch(event)
	d.Wait()

	require.Len(t, sink.sent, 1)
	assert.Empty(t, sink.sent[0].Name)
	assert.Contains(t, sink.sent[0].Message, "у пользователя 1")
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		kind notifier.Kind
		want string
	}{
		{name: "promoted", kind: notifier.KindPromoted, want: "Освободился слот 2024-01-10 в 09:00 у Olga, он забронирован за вами."},
		{name: "cancelled", kind: notifier.KindCancelled, want: "Запись на 2024-01-10 в 09:00 отменена, слот снова свободен."},
		{name: "booked", kind: notifier.KindBooked, want: "Ваш слот на 2024-01-10 в 09:00 забронирован."},
		{name: "skipped", kind: notifier.KindSkipped, want: "Слот 2024-01-10 в 09:00 у Olga освободился, но в это время вы заняты. Вы исключены из листа ожидания."},
		{name: "unknown", kind: notifier.Kind("other"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &notifier.Notification{Kind: tt.kind, OwnerID: 1, OwnerName: "Olga", Date: "2024-01-10", Time: "09:00"}
			assert.Equal(t, tt.want, message(n))
		})
	}
}
