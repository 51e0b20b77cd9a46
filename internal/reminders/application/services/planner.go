package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
)

// Settings are the reminder toggles and fixed times.
type Settings struct {
	NotificationsEnabled bool
	GoalRemindersEnabled bool
	Fixed                []domain.FixedReminder
}

// SettingsFromPreferences converts the preferences file. Invalid fixed times
// are dropped; when none remain the defaults apply.
func SettingsFromPreferences(p config.Preferences) Settings {
	s := Settings{
		NotificationsEnabled: p.NotificationsEnabled,
		GoalRemindersEnabled: p.GoalRemindersEnabled,
	}
	for _, f := range p.FixedReminders {
		tod, err := domain.NewTimeOfDay(f.Hour, f.Minute)
		if err != nil {
			continue
		}
		s.Fixed = append(s.Fixed, domain.FixedReminder{ID: f.ID, Time: tod})
	}
	if len(s.Fixed) == 0 {
		s.Fixed = domain.DefaultFixedReminders()
	}
	return s
}

// SettingsSource returns the current settings. It is called on every plan so
// toggles take effect without a restart.
type SettingsSource func(ctx context.Context) (Settings, error)

// GoalSource lists tasks whose goal times produce reminders.
type GoalSource interface {
	FindActive(ctx context.Context) ([]*tasksDomain.Task, error)
}

// Planner merges fixed and goal-time reminders into one schedule.
type Planner struct {
	tasks     GoalSource
	settings  SettingsSource
	scheduler *domain.GoalTimeScheduler
}

// NewPlanner creates a Planner computing instants in loc.
func NewPlanner(tasks GoalSource, settings SettingsSource, loc *time.Location) *Planner {
	return &Planner{tasks: tasks, settings: settings, scheduler: domain.NewGoalTimeScheduler(loc)}
}

// Upcoming lists reminders over days calendar days from from, ordered by
// time. Nothing is planned while notifications are off.
func (p *Planner) Upcoming(ctx context.Context, from time.Time, days int) ([]domain.Reminder, error) {
	if days < 1 {
		return nil, domain.ErrInvalidWindow
	}
	settings, err := p.settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reminder settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return nil, nil
	}

	var out []domain.Reminder
	for _, f := range settings.Fixed {
		instants, err := p.scheduler.Upcoming(from, []domain.TimeOfDay{f.Time}, days)
		if err != nil {
			return nil, err
		}
		for _, at := range instants {
			// Fixed reminders fire strictly after from, as NextFireDelay does.
			if !at.After(from) {
				continue
			}
			out = append(out, domain.Reminder{ID: f.ID, Kind: domain.KindFixed, Title: f.Message(), At: at})
		}
	}

	if settings.GoalRemindersEnabled {
		tasks, err := p.tasks.FindActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("load goal times: %w", err)
		}
		for _, t := range tasks {
			goal := t.GoalTime()
			if goal == nil {
				continue
			}
			instants, err := p.scheduler.Upcoming(from, []domain.TimeOfDay{{Hour: goal.Hour, Minute: goal.Minute}}, days)
			if err != nil {
				return nil, err
			}
			for _, at := range instants {
				out = append(out, domain.Reminder{
					ID:     fmt.Sprintf("goal_task_%d", t.ID()),
					Kind:   domain.KindGoal,
					TaskID: t.ID(),
					Title:  t.Title(),
					At:     at,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Next returns the first reminder due from now and the delay until it, or nil
// when nothing is scheduled. A fixed reminder due exactly at now is already
// past; its next firing is a day later.
func (p *Planner) Next(ctx context.Context, now time.Time) (*domain.Reminder, time.Duration, error) {
	upcoming, err := p.Upcoming(ctx, now, 2)
	if err != nil {
		return nil, 0, err
	}
	if len(upcoming) == 0 {
		return nil, 0, nil
	}
	next := upcoming[0]
	return &next, next.At.Sub(now), nil
}
