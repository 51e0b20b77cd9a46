// Package domain computes when reminders fire.
package domain

import (
	"fmt"
	"sort"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

var (
	ErrInvalidWindow    = sharedDomain.NewValidation("reminder window must be at least one day")
	ErrInvalidTimeOfDay = sharedDomain.NewValidation("time of day must be within 00:00-23:59")
)

// Fixed reminder ids.
const (
	FixedMorningID = "fixed_morning_0700"
	FixedEveningID = "fixed_evening_2100"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// on returns the instant of t on the calendar day of day, in loc.
func (t TimeOfDay) on(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, loc)
}

// NextFireDelay returns how long until hour:minute next occurs: today when
// that instant is strictly after now, tomorrow otherwise. now's location
// defines the calendar day.
func NextFireDelay(now time.Time, hour, minute int) time.Duration {
	y, m, d := now.Date()
	target := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return target.Sub(now)
}

// FixedReminder fires every day at the same local time.
type FixedReminder struct {
	ID   string
	Time TimeOfDay
}

// DefaultFixedReminders returns the morning and evening check-ins.
func DefaultFixedReminders() []FixedReminder {
	return []FixedReminder{
		{ID: FixedMorningID, Time: TimeOfDay{Hour: 7}},
		{ID: FixedEveningID, Time: TimeOfDay{Hour: 21}},
	}
}

// Message is the notification body for a fixed reminder.
func (r FixedReminder) Message() string {
	return fmt.Sprintf("Time to check your %s tasks.", r.Time)
}

// GoalTimeScheduler computes goal-time reminder instants in one location.
type GoalTimeScheduler struct {
	loc *time.Location
}

// NewGoalTimeScheduler creates a scheduler; a nil loc means time.Local.
func NewGoalTimeScheduler(loc *time.Location) *GoalTimeScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &GoalTimeScheduler{loc: loc}
}

// Next returns the earliest instant at or after now among times, looking at
// today and tomorrow. It reports false when times is empty.
func (s *GoalTimeScheduler) Next(now time.Time, times []TimeOfDay) (time.Time, bool) {
	normalized := normalize(times)
	if len(normalized) == 0 {
		return time.Time{}, false
	}

	local := now.In(s.loc)
	for day := 0; day < 2; day++ {
		date := local.AddDate(0, 0, day)
		for _, t := range normalized {
			if at := t.on(date, s.loc); !at.Before(local) {
				return at, true
			}
		}
	}
	return time.Time{}, false
}

// Upcoming lists every instant of times over days calendar days starting at
// from's date, keeping those at or after from, in order.
func (s *GoalTimeScheduler) Upcoming(from time.Time, times []TimeOfDay, days int) ([]time.Time, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}
	normalized := normalize(times)
	if len(normalized) == 0 {
		return nil, nil
	}

	local := from.In(s.loc)
	var out []time.Time
	for day := 0; day < days; day++ {
		date := local.AddDate(0, 0, day)
		for _, t := range normalized {
			if at := t.on(date, s.loc); !at.Before(local) {
				out = append(out, at)
			}
		}
	}
	return out, nil
}

// normalize dedupes and sorts times.
func normalize(times []TimeOfDay) []TimeOfDay {
	seen := make(map[int]bool, len(times))
	out := make([]TimeOfDay, 0, len(times))
	for _, t := range times {
		if seen[t.minutes()] {
			continue
		}
		seen[t.minutes()] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].minutes() < out[j].minutes() })
	return out
}
