package provision_schedule

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Config окно и сетка слотов новых дней
type Config struct {
	Days int // сколько дней вперёд, включая сегодня
	Grid domain.SlotGrid
}

// DefaultConfig неделя по 45 минут с 08:00 до 17:45
func DefaultConfig() Config {
	return Config{
		Days: domain.DefaultScheduleDays,
		Grid: domain.DefaultSlotGrid(),
	}
}

// Request модель запроса на публикацию расписания владельца
type Request struct {
	OwnerID int64
}

// Response итог публикации
type Response struct {
	OwnerID     int64
	CreatedDays []time.Time // новые дни
	PrunedDays  int64       // удалённые прошедшие дни
}

// Summary итог прогона по всем владельцам
type Summary struct {
	Owners      int
	CreatedDays int
	PrunedDays  int64
	Failed      []int64
}
