package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

// RoutingReminderDue is the routing key of ReminderDue.
const RoutingReminderDue = "reminders.reminder.due"

// Kind distinguishes fixed check-ins from task goal times.
type Kind string

const (
	KindFixed Kind = "fixed"
	KindGoal  Kind = "goal"
)

// Reminder is one scheduled notification instant.
type Reminder struct {
	ID     string    `json:"id" yaml:"id"`
	Kind   Kind      `json:"kind" yaml:"kind"`
	TaskID int64     `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Title  string    `json:"title" yaml:"title"`
	At     time.Time `json:"at" yaml:"at"`
}

// ReminderDue is emitted when a reminder's instant has passed.
type ReminderDue struct {
	sharedDomain.BaseEvent
	Reminder Reminder `json:"reminder"`
}

// NewReminderDue creates a ReminderDue event.
func NewReminderDue(r Reminder, now time.Time) *ReminderDue {
	return &ReminderDue{
		BaseEvent: sharedDomain.NewBaseEvent(r.ID, "Reminder", RoutingReminderDue, now),
		Reminder:  r,
	}
}
