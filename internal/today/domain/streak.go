package domain

import "time"

// Streak is the single day-over-day completion record.
type Streak struct {
	Current      int
	Best         int
	LastAchieved DateKey
	UpdatedAt    time.Time
}

// Apply folds the outcome of date into the streak. An achieved day extends a
// streak ending yesterday, is a no-op when already counted, and restarts at
// one otherwise. A day without achievement only breaks the streak once a
// whole day has been missed. It reports whether current, best or the last
// achieved date changed.
func (s *Streak) Apply(date DateKey, achieved bool, now time.Time) bool {
	before := *s
	yesterday := date.AddDays(-1)

	if achieved {
		switch s.LastAchieved {
		case yesterday:
			s.Current++
		case date:
		default:
			s.Current = 1
		}
		s.Best = max(s.Best, s.Current)
		s.LastAchieved = date
	} else if !s.LastAchieved.IsZero() && s.LastAchieved != yesterday && s.LastAchieved != date {
		s.Current = 0
	}
	s.UpdatedAt = now
	return before.Current != s.Current || before.Best != s.Best || before.LastAchieved != s.LastAchieved
}
