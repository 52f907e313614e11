package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
)

const defaultTimeout = 5 * time.Second

// Dispatcher отправляет уведомления после коммита, в фоне и без повторов.
// Ошибки доставки только логируются и не влияют на бронирование.
type Dispatcher struct {
	users   UserServiceClient
	sink    NotificationSink
	logger  Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер; users может быть nil, тогда уведомления уходят без имён
func NewDispatcher(users UserServiceClient, sink NotificationSink, timeout time.Duration, logger Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		users:   users,
		sink:    sink,
		logger:  logger,
		timeout: timeout,
	}
}

// Dispatch ставит отправку в фон и сразу возвращается
func (d *Dispatcher) Dispatch(ev Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.Send(ctx, ev); err != nil {
			d.logger.Warn("Notifications: %s for user=%d not delivered: %v", ev.Kind, ev.Recipient, err)
		}
	}()
}

// Send собирает уведомление и синхронно отправляет его
func (d *Dispatcher) Send(ctx context.Context, ev Event) error {
	n := &notifier.Notification{
		Kind:    ev.Kind,
		UserID:  ev.Recipient,
		OwnerID: ev.OwnerID,
		Date:    ev.Date.Format(domain.DateFormat),
		Time:    ev.Time.String(),
	}

	if d.users != nil {
		if user, err := d.users.GetUserWithGracefulDegradation(ctx, ev.Recipient); err == nil {
			n.Name = user.Name
			n.Email = user.Email
		}
		if ev.OwnerID != ev.Recipient {
			if owner, err := d.users.GetUserWithGracefulDegradation(ctx, ev.OwnerID); err == nil {
				n.OwnerName = owner.Name
			}
		}
	}

	n.Message = message(n)
	return d.sink.Notify(ctx, n)
}

// Wait дожидается фоновых отправок (graceful shutdown)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func message(n *notifier.Notification) string {
	with := n.OwnerName
	if with == "" {
		with = fmt.Sprintf("пользователя %d", n.OwnerID)
	}

	switch n.Kind {
	case notifier.KindPromoted:
		return fmt.Sprintf("Освободился слот %s в %s у %s, он забронирован за вами.", n.Date, n.Time, with)
	case notifier.KindCancelled:
		return fmt.Sprintf("Запись на %s в %s отменена, слот снова свободен.", n.Date, n.Time)
	case notifier.KindBooked:
		return fmt.Sprintf("Ваш слот на %s в %s забронирован.", n.Date, n.Time)
	case notifier.KindSkipped:
		return fmt.Sprintf("Слот %s в %s у %s освободился, но в это время вы заняты. Вы исключены из листа ожидания.", n.Date, n.Time, with)
	default:
		return ""
	}
}
