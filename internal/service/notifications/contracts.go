package notifications

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
)

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// NotificationSink получатель уведомлений (webhook)
type NotificationSink interface {
	Notify(ctx context.Context, n *notifier.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
