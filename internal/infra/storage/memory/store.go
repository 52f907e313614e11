package memory

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type dayKey struct {
	ownerID int64
	date    string
}

type slotKey struct {
	ownerID int64
	date    string
	hour    int
	minute  int
}

type statKey struct {
	ownerID  int64
	bookerID int64
	hour     int
	minute   int
}

type state struct {
	days      map[int64]domain.ScheduleDay
	dayIndex  map[dayKey]int64
	slots     map[int64]domain.Slot
	slotIndex map[slotKey]int64
	waitlist  map[int64][]domain.WaitlistEntry
	stats     map[statKey]int
	nextDayID int64
	nextSlot  int64
}

func newState() *state {
	return &state{
		days:      make(map[int64]domain.ScheduleDay),
		dayIndex:  make(map[dayKey]int64),
		slots:     make(map[int64]domain.Slot),
		slotIndex: make(map[slotKey]int64),
		waitlist:  make(map[int64][]domain.WaitlistEntry),
		stats:     make(map[statKey]int),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.days {
		c.days[k] = v
	}
	for k, v := range s.dayIndex {
		c.dayIndex[k] = v
	}
	for k, v := range s.slots {
		if v.BookedBy != nil {
			v.BookedBy = ptr.Ptr(*v.BookedBy)
		}
		c.slots[k] = v
	}
	for k, v := range s.slotIndex {
		c.slotIndex[k] = v
	}
	for k, v := range s.waitlist {
		c.waitlist[k] = append([]domain.WaitlistEntry(nil), v...)
	}
	for k, v := range s.stats {
		c.stats[k] = v
	}
	c.nextDayID = s.nextDayID
	c.nextSlot = s.nextSlot
	return c
}

// Store хранилище в памяти с теми же контрактами, что и Postgres репозитории.
// Транзакции сериализуются целиком, при ошибке состояние откатывается к снимку.
type Store struct {
	txMu sync.Mutex // одна транзакция за раз
	mu   sync.Mutex // защищает data в пределах одной операции
	data *state
	now  func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// Slots возвращает репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Waitlist возвращает репозиторий листов ожидания поверх хранилища
func (s *Store) Waitlist() *WaitlistRepository {
	return &WaitlistRepository{store: s}
}

// Analytics возвращает репозиторий аналитики поверх хранилища
func (s *Store) Analytics() *AnalyticsRepository {
	return &AnalyticsRepository{store: s}
}

// TxManager возвращает менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func (s *Store) read(fn func(d *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *Store) write(fn func(d *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) snapshot() *state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *Store) restore(snap *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snap
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func toSlotKey(ownerID int64, date time.Time, t types.TimeOfDay) slotKey {
	return slotKey{ownerID: ownerID, date: dateKey(date), hour: t.Hour, minute: t.Minute}
}

func copySlot(s domain.Slot) *domain.Slot {
	if s.BookedBy != nil {
		s.BookedBy = ptr.Ptr(*s.BookedBy)
	}
	return &s
}
