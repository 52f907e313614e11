package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ResolveSlot(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error)
	ListBookedBy(ctx context.Context, userID int64) ([]*domain.UserBooking, error)
}

// WaitlistRepository интерфейс репозитория листов ожидания
type WaitlistRepository interface {
	ListAll(ctx context.Context, slotID int64) ([]*domain.WaitlistEntry, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
