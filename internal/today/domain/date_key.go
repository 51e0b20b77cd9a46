package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

// ErrInvalidDateKey is returned for strings that are not YYYY-MM-DD.
var ErrInvalidDateKey = sharedDomain.NewValidation("date must be YYYY-MM-DD")

const dateKeyLayout = "2006-01-02"

// DateKey is a calendar date serialized as YYYY-MM-DD. Keys order
// lexicographically in calendar order.
type DateKey string

// DateKeyOf returns the calendar date of t in t's location.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey validates s.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", ErrInvalidDateKey
	}
	return DateKeyOf(t), nil
}

// Time returns midnight of the date in loc.
func (k DateKey) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	return t, nil
}

// Validate reports ErrInvalidDateKey unless k is a real YYYY-MM-DD date.
func (k DateKey) Validate() error {
	if _, err := k.Time(time.UTC); err != nil {
		return err
	}
	return nil
}

// civil is Time in UTC for keys already validated at the boundary.
func (k DateKey) civil() time.Time {
	t, _ := time.Parse(dateKeyLayout, string(k))
	return t
}

// AddDays shifts the date by n calendar days. k must be valid; keys enter
// the domain through ParseDateKey, DateKeyOf or a validated storage row.
func (k DateKey) AddDays(n int) DateKey {
	return DateKeyOf(k.civil().AddDate(0, 0, n))
}

// Before reports whether k is an earlier date than other.
func (k DateKey) Before(other DateKey) bool {
	return k < other
}

// IsZero reports whether the key is unset.
func (k DateKey) IsZero() bool {
	return k == ""
}

func (k DateKey) String() string {
	return string(k)
}

// WeekStart returns the Monday on or before k.
func (k DateKey) WeekStart() DateKey {
	offset := (int(k.civil().Weekday()) + 6) % 7
	return k.AddDays(-offset)
}
