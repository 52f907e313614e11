package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SlotRepository слоты и дни расписания в памяти
type SlotRepository struct {
	store *Store
}

// ResolveSlot находит слот владельца по дате и времени
func (r *SlotRepository) ResolveSlot(_ context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error) {
	var (
		result *domain.Slot
		err    error
	)
	r.store.read(func(d *state) {
		id, ok := d.slotIndex[toSlotKey(ownerID, date, t)]
		if !ok {
			err = slot.ErrSlotNotFound
			return
		}
		result = copySlot(d.slots[id])
	})
	return result, err
}

// ResolveSlotForUpdate как ResolveSlot; блокировку обеспечивает TxManager
func (r *SlotRepository) ResolveSlotForUpdate(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error) {
	return r.ResolveSlot(ctx, ownerID, date, t)
}

// GetState возвращает доступность и держателя слота
func (r *SlotRepository) GetState(_ context.Context, slotID int64) (*domain.SlotState, error) {
	var (
		result *domain.SlotState
		err    error
	)
	r.store.read(func(d *state) {
		s, ok := d.slots[slotID]
		if !ok {
			err = slot.ErrSlotNotFound
			return
		}
		st := copySlot(s).State()
		result = &st
	})
	return result, err
}

// SetBooked отмечает держателя слота, available не меняется
func (r *SlotRepository) SetBooked(_ context.Context, slotID int64, bookerID int64) error {
	return r.update(slotID, func(s *domain.Slot) {
		s.BookedBy = ptr.Ptr(bookerID)
	})
}

// Reserve резервирует зеркальный слот за другой стороной встречи
func (r *SlotRepository) Reserve(_ context.Context, slotID int64, counterpartID int64) error {
	return r.update(slotID, func(s *domain.Slot) {
		s.Available = false
		s.BookedBy = ptr.Ptr(counterpartID)
	})
}

// SetAvailable снимает бронь; restoreAvailable дополнительно делает слот доступным
func (r *SlotRepository) SetAvailable(_ context.Context, slotID int64, restoreAvailable bool) error {
	return r.update(slotID, func(s *domain.Slot) {
		s.BookedBy = nil
		if restoreAvailable {
			s.Available = true
		}
	})
}

// ToggleAvailability инвертирует available и возвращает новое значение
func (r *SlotRepository) ToggleAvailability(_ context.Context, slotID int64) (bool, error) {
	var available bool
	err := r.update(slotID, func(s *domain.Slot) {
		s.Available = !s.Available
		available = s.Available
	})
	return available, err
}

// ListByOwnerAndDate возвращает слоты дня по возрастанию времени
func (r *SlotRepository) ListByOwnerAndDate(_ context.Context, ownerID int64, date time.Time) ([]*domain.SlotView, error) {
	views := make([]*domain.SlotView, 0)
	key := dateKey(date)
	r.store.read(func(d *state) {
		for _, s := range d.slots {
			if s.OwnerID != ownerID || dateKey(s.Date) != key {
				continue
			}
			c := copySlot(s)
			views = append(views, &domain.SlotView{
				SlotID:        c.ID,
				Time:          c.Time,
				Available:     c.Available,
				BookedBy:      c.BookedBy,
				WaitlistCount: len(d.waitlist[c.ID]),
			})
		}
	})

	sort.Slice(views, func(i, j int) bool {
		return views[i].Time.IsBefore(views[j].Time)
	})
	return views, nil
}

// ListBookedBy возвращает слоты в чужих календарях, которые держит пользователь
func (r *SlotRepository) ListBookedBy(_ context.Context, userID int64) ([]*domain.UserBooking, error) {
	bookings := make([]*domain.UserBooking, 0)
	r.store.read(func(d *state) {
		for _, s := range d.slots {
			if !s.IsBookedBy(userID) || s.OwnerID == userID {
				continue
			}
			bookings = append(bookings, &domain.UserBooking{
				SlotID:  s.ID,
				OwnerID: s.OwnerID,
				Date:    s.Date,
				Time:    s.Time,
			})
		}
	})

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.After(bookings[j].Date)
		}
		if bookings[i].Time != bookings[j].Time {
			return bookings[i].Time.IsBefore(bookings[j].Time)
		}
		return bookings[i].OwnerID < bookings[j].OwnerID
	})
	return bookings, nil
}

// CreateScheduleDay создает день расписания со свободными доступными слотами
func (r *SlotRepository) CreateScheduleDay(_ context.Context, ownerID int64, date time.Time, times []types.TimeOfDay) (*domain.ScheduleDay, error) {
	var day domain.ScheduleDay
	err := r.store.write(func(d *state) error {
		dk := dayKey{ownerID: ownerID, date: dateKey(date)}
		if _, exists := d.dayIndex[dk]; exists {
			return slot.ErrScheduleDayExists
		}

		d.nextDayID++
		day = domain.ScheduleDay{
			ID:        d.nextDayID,
			OwnerID:   ownerID,
			Date:      domain.DateOnly(date),
			CreatedAt: r.store.now(),
		}
		d.days[day.ID] = day
		d.dayIndex[dk] = day.ID

		for _, t := range times {
			key := toSlotKey(ownerID, date, t)
			if _, exists := d.slotIndex[key]; exists {
				continue
			}
			d.nextSlot++
			d.slots[d.nextSlot] = domain.Slot{
				ID:         d.nextSlot,
				ScheduleID: day.ID,
				OwnerID:    ownerID,
				Date:       day.Date,
				Time:       t,
				Available:  true,
			}
			d.slotIndex[key] = d.nextSlot
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// GetScheduleDay получает день расписания владельца
func (r *SlotRepository) GetScheduleDay(_ context.Context, ownerID int64, date time.Time) (*domain.ScheduleDay, error) {
	var (
		day *domain.ScheduleDay
		err error
	)
	r.store.read(func(d *state) {
		id, ok := d.dayIndex[dayKey{ownerID: ownerID, date: dateKey(date)}]
		if !ok {
			err = slot.ErrScheduleNotFound
			return
		}
		found := d.days[id]
		day = &found
	})
	return day, err
}

// GetLastScheduleDate возвращает последнюю дату владельца, nil если дней нет
func (r *SlotRepository) GetLastScheduleDate(_ context.Context, ownerID int64) (*time.Time, error) {
	var last *time.Time
	r.store.read(func(d *state) {
		for _, day := range d.days {
			if day.OwnerID != ownerID {
				continue
			}
			if last == nil || day.Date.After(*last) {
				date := day.Date
				last = &date
			}
		}
	})
	return last, nil
}

// CountScheduleDays считает дни владельца начиная с from
func (r *SlotRepository) CountScheduleDays(_ context.Context, ownerID int64, from time.Time) (int, error) {
	from = domain.DateOnly(from)
	count := 0
	r.store.read(func(d *state) {
		for _, day := range d.days {
			if day.OwnerID == ownerID && !day.Date.Before(from) {
				count++
			}
		}
	})
	return count, nil
}

// DeletePastDays удаляет дни раньше today вместе со слотами и листами ожидания
func (r *SlotRepository) DeletePastDays(_ context.Context, ownerID int64, today time.Time) (int64, error) {
	today = domain.DateOnly(today)
	var deleted int64
	err := r.store.write(func(d *state) error {
		for id, day := range d.days {
			if day.OwnerID != ownerID || !day.Date.Before(today) {
				continue
			}
			for slotID, s := range d.slots {
				if s.ScheduleID != id {
					continue
				}
				delete(d.slotIndex, toSlotKey(s.OwnerID, s.Date, s.Time))
				delete(d.waitlist, slotID)
				delete(d.slots, slotID)
			}
			delete(d.dayIndex, dayKey{ownerID: ownerID, date: dateKey(day.Date)})
			delete(d.days, id)
			deleted++
		}
		return nil
	})
	return deleted, err
}

// ListOwners возвращает владельцев с хотя бы одним днём расписания
func (r *SlotRepository) ListOwners(_ context.Context) ([]int64, error) {
	seen := make(map[int64]struct{})
	owners := make([]int64, 0)
	r.store.read(func(d *state) {
		for _, day := range d.days {
			if _, ok := seen[day.OwnerID]; ok {
				continue
			}
			seen[day.OwnerID] = struct{}{}
			owners = append(owners, day.OwnerID)
		}
	})
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners, nil
}

func (r *SlotRepository) update(slotID int64, mutate func(s *domain.Slot)) error {
	return r.store.write(func(d *state) error {
		s, ok := d.slots[slotID]
		if !ok {
			return slot.ErrSlotNotFound
		}
		mutate(&s)
		d.slots[slotID] = s
		return nil
	})
}
