package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не в формате HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда час или минута вне допустимого диапазона
	ErrTimeOutOfRange = errors.New("time of day out of range")
)

const minutesPerDay = 24 * 60

// TimeOfDay время суток с точностью до минуты (часы 0-23, минуты 0-59)
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay создает время суток с валидацией
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// MustTimeOfDay как NewTimeOfDay, но паникует на некорректных значениях.
// Используется для констант и в тестах.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTime извлекает время суток из time.Time
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay парсит строку формата "HH:MM" (допускается "H:MM")
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(hour, minute)
}

// Validate проверяет диапазоны часа и минуты
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour=%d", ErrTimeOutOfRange, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute=%d", ErrTimeOutOfRange, t.Minute)
	}
	return nil
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes возвращает количество минут от начала суток
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// IsBefore возвращает true, если t раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes сдвигает время на n минут. Переход через полночь считается ошибкой.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	total := t.Minutes() + n
	if total < 0 || total >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %s%+d min", ErrTimeOutOfRange, t, n)
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}, nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
