package provision_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SlotRepository интерфейс репозитория дней расписания
type SlotRepository interface {
	CreateScheduleDay(ctx context.Context, ownerID int64, date time.Time, times []types.TimeOfDay) (*domain.ScheduleDay, error)
	GetLastScheduleDate(ctx context.Context, ownerID int64) (*time.Time, error)
	CountScheduleDays(ctx context.Context, ownerID int64, from time.Time) (int, error)
	DeletePastDays(ctx context.Context, ownerID int64, today time.Time) (int64, error)
	ListOwners(ctx context.Context) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе расписания
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
