package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

var (
	ErrItemNotFound      = sharedDomain.NewNotFound("daily item not found")
	ErrInvalidItemID     = sharedDomain.NewValidation("daily item id must be positive")
	ErrInvalidStatus     = sharedDomain.NewValidation("invalid item status")
	ErrDeferBeforeSource = sharedDomain.NewValidation("cannot defer to a date before the item's date")
)

// ItemStatus is the state of one daily item.
type ItemStatus string

const (
	StatusTodo     ItemStatus = "TODO"
	StatusDone     ItemStatus = "DONE"
	StatusDeferred ItemStatus = "DEFERRED"
	StatusSkipped  ItemStatus = "SKIPPED"
)

// IsValid checks if the status is known.
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusDone, StatusDeferred, StatusSkipped:
		return true
	default:
		return false
	}
}

// DailyItem is one calendar-day instance of a task.
type DailyItem struct {
	ID          int64
	DateKey     DateKey
	TaskID      int64
	Status      ItemStatus
	CompletedAt *time.Time
	DeferredTo  DateKey
	CreatedAt   time.Time
}

// NewDailyItem creates a TODO item.
func NewDailyItem(date DateKey, taskID int64, now time.Time) *DailyItem {
	return &DailyItem{
		DateKey:   date,
		TaskID:    taskID,
		Status:    StatusTodo,
		CreatedAt: now,
	}
}

// DeferTarget resolves where a deferral lands: requested when set, the next
// day otherwise. Targets before the item's own date are rejected.
func (i *DailyItem) DeferTarget(requested DateKey) (DateKey, error) {
	target := requested
	if target.IsZero() {
		target = i.DateKey.AddDays(1)
	}
	if target.Before(i.DateKey) {
		return "", ErrDeferBeforeSource
	}
	return target, nil
}

// SetStatus rewrites status, completion time and deferral target together.
// deferredTo is only kept for DEFERRED.
func (i *DailyItem) SetStatus(to ItemStatus, now time.Time, deferredTo DateKey) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	i.Status = to
	i.CompletedAt = nil
	i.DeferredTo = ""

	switch to {
	case StatusDone:
		completed := now
		i.CompletedAt = &completed
	case StatusDeferred:
		i.DeferredTo = deferredTo
	}
	return nil
}
