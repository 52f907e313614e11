package claim_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ResolveSlotForUpdate(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error)
	SetBooked(ctx context.Context, slotID int64, bookerID int64) error
	Reserve(ctx context.Context, slotID int64, counterpartID int64) error
}

// WaitlistRepository интерфейс репозитория листов ожидания
type WaitlistRepository interface {
	Enqueue(ctx context.Context, slotID int64, bookerID int64) (int, error)
	Exists(ctx context.Context, slotID int64, bookerID int64) (bool, error)
}

// AnalyticsRepository интерфейс репозитория аналитики
type AnalyticsRepository interface {
	RecordBooking(ctx context.Context, ownerID int64, bookerID int64, t types.TimeOfDay) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка слота на время критической секции
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// OutcomeRecorder учитывает исходы бронирований в метриках
type OutcomeRecorder interface {
	IncBookingOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
