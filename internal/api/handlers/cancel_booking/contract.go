package cancel_booking

//go:generate mockgen -source=contract.go -destination=mock_contract.go -package=cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error)
}

// Notifier отправляет уведомление в фоне после коммита
type Notifier interface {
	Dispatch(ev notifications.Event)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
