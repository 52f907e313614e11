package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// AnalyticsRepository счётчики бронирований в памяти
type AnalyticsRepository struct {
	store *Store
}

// RecordBooking увеличивает счётчик (owner, booker, time) на 1
func (r *AnalyticsRepository) RecordBooking(_ context.Context, ownerID int64, bookerID int64, t types.TimeOfDay) error {
	return r.store.write(func(d *state) error {
		d.stats[statKey{ownerID: ownerID, bookerID: bookerID, hour: t.Hour, minute: t.Minute}]++
		return nil
	})
}

// GetCounter возвращает значение счётчика, 0 если его нет
func (r *AnalyticsRepository) GetCounter(_ context.Context, ownerID int64, bookerID int64, t types.TimeOfDay) (int, error) {
	var count int
	r.store.read(func(d *state) {
		count = d.stats[statKey{ownerID: ownerID, bookerID: bookerID, hour: t.Hour, minute: t.Minute}]
	})
	return count, nil
}

// MostFrequentSlot возвращает самое популярное время дня владельца, при равенстве более раннее
func (r *AnalyticsRepository) MostFrequentSlot(_ context.Context, ownerID int64) (*domain.SlotFrequency, error) {
	totals := make(map[types.TimeOfDay]int)
	r.store.read(func(d *state) {
		for k, v := range d.stats {
			if k.ownerID == ownerID {
				totals[types.TimeOfDay{Hour: k.hour, Minute: k.minute}] += v
			}
		}
	})

	var best *domain.SlotFrequency
	for t, total := range totals {
		if best == nil || total > best.Total || (total == best.Total && t.IsBefore(best.Time)) {
			best = &domain.SlotFrequency{Time: t, Total: total}
		}
	}
	return best, nil
}

// TopBookers возвращает до limit пользователей по убыванию числа бронирований, при равенстве по id
func (r *AnalyticsRepository) TopBookers(_ context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error) {
	totals := make(map[int64]int)
	r.store.read(func(d *state) {
		for k, v := range d.stats {
			if k.ownerID == ownerID {
				totals[k.bookerID] += v
			}
		}
	})

	result := make([]*domain.BookerTotal, 0, len(totals))
	for bookerID, total := range totals {
		result = append(result, &domain.BookerTotal{BookerID: bookerID, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].BookerID < result[j].BookerID
	})

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
