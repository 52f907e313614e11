package get_slot_view

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetScheduleDay(ctx context.Context, ownerID int64, date time.Time) (*domain.ScheduleDay, error)
	ListByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.SlotView, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
