package analytics

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
)

// AnalyticsRepository интерфейс репозитория аналитики
type AnalyticsRepository interface {
	MostFrequentSlot(ctx context.Context, ownerID int64) (*domain.SlotFrequency, error)
	TopBookers(ctx context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error)
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
