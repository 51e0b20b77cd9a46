package domain

import (
	"strings"
	"time"
)

// RecurrenceKind says how a task repeats.
type RecurrenceKind string

const (
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
	RecurrenceCustom  RecurrenceKind = "custom"
)

// IsValid checks if the kind is known.
func (k RecurrenceKind) IsValid() bool {
	switch k {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

// UsesWeekdays reports whether the kind is driven by a weekday mask.
func (k RecurrenceKind) UsesWeekdays() bool {
	return k == RecurrenceWeekly || k == RecurrenceCustom
}

// WeekdayMask is a 7-bit set of weekdays: bit 0 is Monday, bit 6 is Sunday.
// Zero means "no days given".
type WeekdayMask uint8

// AllWeekdays has every day set.
const AllWeekdays WeekdayMask = 0x7f

// WeekdayBit returns the mask bit of a weekday.
func WeekdayBit(day time.Weekday) WeekdayMask {
	return 1 << ((int(day) + 6) % 7)
}

// MaskOf builds a mask from weekdays.
func MaskOf(days ...time.Weekday) WeekdayMask {
	var m WeekdayMask
	for _, d := range days {
		m |= WeekdayBit(d)
	}
	return m
}

// Has reports whether day is in the mask.
func (m WeekdayMask) Has(day time.Weekday) bool {
	return m&WeekdayBit(day) != 0
}

// Valid reports whether only the seven weekday bits are used.
func (m WeekdayMask) Valid() bool {
	return m&^AllWeekdays == 0
}

var weekdayNames = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// String renders the mask as "mon,wed,fri".
func (m WeekdayMask) String() string {
	var parts []string
	for i, name := range weekdayNames {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseWeekdayMask parses a comma separated list of day abbreviations.
// An empty string yields the zero mask.
func ParseWeekdayMask(s string) (WeekdayMask, error) {
	var m WeekdayMask
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for i, name := range weekdayNames {
			if strings.HasPrefix(part, name) {
				m |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, ErrInvalidWeekday
		}
	}
	return m, nil
}

// ShouldOccur decides whether a task with the given recurrence produces an
// item on targetDate. Only the calendar dates of baseDate and targetDate are
// compared; callers pass both in the same location.
func ShouldOccur(kind RecurrenceKind, baseDate, targetDate time.Time, mask WeekdayMask) bool {
	base := civilDate(baseDate)
	target := civilDate(targetDate)
	if target.Before(base) {
		return false
	}

	switch kind {
	case RecurrenceDaily:
		return true
	case RecurrenceMonthly:
		return target.Day() == min(base.Day(), daysIn(target.Year(), target.Month()))
	case RecurrenceWeekly, RecurrenceCustom:
		effective := mask
		if effective == 0 {
			effective = WeekdayBit(base.Weekday())
		}
		return effective.Has(target.Weekday())
	default:
		return false
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
