// Package domain holds task definitions and the recurrence rules that turn
// them into daily items.
package domain

import (
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

var (
	ErrTaskNotFound       = sharedDomain.NewNotFound("task not found")
	ErrInvalidTaskID      = sharedDomain.NewValidation("task id must be positive")
	ErrEmptyTitle         = sharedDomain.NewValidation("task title cannot be empty")
	ErrDuplicateTitle     = sharedDomain.NewValidation("an active task with this title already exists")
	ErrInvalidRecurrence  = sharedDomain.NewValidation("invalid recurrence kind")
	ErrInvalidPriority    = sharedDomain.NewValidation("invalid priority")
	ErrInvalidWeekday     = sharedDomain.NewValidation("invalid weekday")
	ErrInvalidWeekdayMask = sharedDomain.NewValidation("weekday mask uses more than seven bits")
	ErrInvalidGoalTime    = sharedDomain.NewValidation("goal time must be HH:MM")
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is known.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// GoalTime is an optional time of day by which the user wants a task done.
type GoalTime struct {
	Hour   int
	Minute int
}

// ParseGoalTime parses "HH:MM".
func ParseGoalTime(s string) (GoalTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return GoalTime{}, ErrInvalidGoalTime
	}
	return GoalTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (g GoalTime) String() string {
	return fmt.Sprintf("%02d:%02d", g.Hour, g.Minute)
}

// Task is a recurring chore definition.
type Task struct {
	sharedDomain.BaseAggregateRoot
	title      string
	category   string
	priority   Priority
	important  bool
	recurrence RecurrenceKind
	mask       WeekdayMask
	goalTime   *GoalTime
	active     bool
}

// Definition carries the user-editable fields of a task.
type Definition struct {
	Title      string
	Category   string
	Priority   Priority
	Important  bool
	Recurrence RecurrenceKind
	Mask       WeekdayMask
	GoalTime   *GoalTime
}

func (d Definition) normalize() (Definition, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return d, ErrEmptyTitle
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.IsValid() {
		return d, ErrInvalidPriority
	}
	if !d.Recurrence.IsValid() {
		return d, ErrInvalidRecurrence
	}
	if !d.Mask.Valid() {
		return d, ErrInvalidWeekdayMask
	}
	if !d.Recurrence.UsesWeekdays() {
		d.Mask = 0
	}
	d.Category = strings.TrimSpace(d.Category)
	return d, nil
}

// NewTask creates an active task.
func NewTask(def Definition, now time.Time) (*Task, error) {
	def, err := def.normalize()
	if err != nil {
		return nil, err
	}
	t := &Task{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(sharedDomain.NewBaseEntity(now)),
		active:            true,
	}
	t.apply(def)
	return t, nil
}

// RehydrateTask rebuilds a task from storage.
func RehydrateTask(id int64, def Definition, active bool, createdAt, updatedAt time.Time) *Task {
	t := &Task{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		active: active,
	}
	t.apply(def)
	return t
}

// Update replaces the definition. Daily and monthly tasks drop their mask.
func (t *Task) Update(def Definition, now time.Time) error {
	def, err := def.normalize()
	if err != nil {
		return err
	}
	t.apply(def)
	t.Touch(now)
	return nil
}

// Deactivate soft-deletes the task.
func (t *Task) Deactivate(now time.Time) {
	t.active = false
	t.Touch(now)
}

func (t *Task) apply(def Definition) {
	t.title = def.Title
	t.category = def.Category
	t.priority = def.Priority
	t.important = def.Important
	t.recurrence = def.Recurrence
	t.mask = def.Mask
	t.goalTime = def.GoalTime
}

func (t *Task) Title() string              { return t.title }
func (t *Task) Category() string           { return t.category }
func (t *Task) Priority() Priority         { return t.priority }
func (t *Task) IsImportant() bool          { return t.important }
func (t *Task) Recurrence() RecurrenceKind { return t.recurrence }
func (t *Task) WeekdayMask() WeekdayMask   { return t.mask }
func (t *Task) GoalTime() *GoalTime        { return t.goalTime }
func (t *Task) IsActive() bool             { return t.active }

// Definition returns the editable fields.
func (t *Task) Definition() Definition {
	return Definition{
		Title:      t.title,
		Category:   t.category,
		Priority:   t.priority,
		Important:  t.important,
		Recurrence: t.recurrence,
		Mask:       t.mask,
		GoalTime:   t.goalTime,
	}
}

// NormalizedTitle is the key used for duplicate detection.
func (t *Task) NormalizedTitle() string {
	return NormalizeTitle(t.title)
}

// NormalizeTitle trims and lowercases a title.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// BaseDate is the creation date in loc, truncated to midnight.
func (t *Task) BaseDate(loc *time.Location) time.Time {
	y, m, d := t.CreatedAt().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// OccursOn reports whether the task produces an item on date.
func (t *Task) OccursOn(date time.Time, loc *time.Location) bool {
	return ShouldOccur(t.recurrence, t.BaseDate(loc), date.In(loc), t.mask)
}
