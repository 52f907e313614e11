package memory

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/waitlist"
)

// WaitlistRepository листы ожидания в памяти, записи слота упорядочены по приоритету
type WaitlistRepository struct {
	store *Store
}

// Enqueue ставит пользователя в конец листа ожидания и возвращает приоритет
func (r *WaitlistRepository) Enqueue(_ context.Context, slotID int64, bookerID int64) (int, error) {
	var priority int
	err := r.store.write(func(d *state) error {
		entries := d.waitlist[slotID]
		maxPriority := 0
		for _, e := range entries {
			if e.BookerID == bookerID {
				return waitlist.ErrAlreadyQueued
			}
			if e.Priority > maxPriority {
				maxPriority = e.Priority
			}
		}

		priority = maxPriority + 1
		d.waitlist[slotID] = append(entries, domain.WaitlistEntry{
			SlotID:    slotID,
			BookerID:  bookerID,
			Priority:  priority,
			CreatedAt: r.store.now(),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return priority, nil
}

// PeekHighestPriority возвращает запись с наименьшим номером приоритета
func (r *WaitlistRepository) PeekHighestPriority(_ context.Context, slotID int64) (*domain.WaitlistEntry, error) {
	var (
		result *domain.WaitlistEntry
		err    error
	)
	r.store.read(func(d *state) {
		entries := d.waitlist[slotID]
		if len(entries) == 0 {
			err = waitlist.ErrWaitlistEmpty
			return
		}
		first := entries[0]
		result = &first
	})
	return result, err
}

// Dequeue удаляет пользователя из листа ожидания, отсутствие записи не ошибка
func (r *WaitlistRepository) Dequeue(_ context.Context, slotID int64, bookerID int64) error {
	return r.store.write(func(d *state) error {
		entries := d.waitlist[slotID]
		for i, e := range entries {
			if e.BookerID != bookerID {
				continue
			}
			rest := append(append([]domain.WaitlistEntry(nil), entries[:i]...), entries[i+1:]...)
			if len(rest) == 0 {
				delete(d.waitlist, slotID)
			} else {
				d.waitlist[slotID] = rest
			}
			return nil
		}
		return nil
	})
}

// ListAll возвращает лист ожидания по возрастанию приоритета
func (r *WaitlistRepository) ListAll(_ context.Context, slotID int64) ([]*domain.WaitlistEntry, error) {
	result := make([]*domain.WaitlistEntry, 0)
	r.store.read(func(d *state) {
		for _, e := range d.waitlist[slotID] {
			entry := e
			result = append(result, &entry)
		}
	})
	return result, nil
}

// Exists проверяет, стоит ли пользователь в листе ожидания слота
func (r *WaitlistRepository) Exists(_ context.Context, slotID int64, bookerID int64) (bool, error) {
	found := false
	r.store.read(func(d *state) {
		for _, e := range d.waitlist[slotID] {
			if e.BookerID == bookerID {
				found = true
				return
			}
		}
	})
	return found, nil
}
