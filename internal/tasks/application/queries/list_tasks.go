package queries

import (
	"context"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID         int64     `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Category   string    `json:"category" yaml:"category"`
	Priority   string    `json:"priority" yaml:"priority"`
	Important  bool      `json:"important" yaml:"important"`
	Recurrence string    `json:"recurrence" yaml:"recurrence"`
	Weekdays   string    `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	GoalTime   string    `json:"goal_time,omitempty" yaml:"goal_time,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// ToDTO converts a task.
func ToDTO(t *domain.Task) TaskDTO {
	dto := TaskDTO{
		ID:         t.ID(),
		Title:      t.Title(),
		Category:   t.Category(),
		Priority:   string(t.Priority()),
		Important:  t.IsImportant(),
		Recurrence: string(t.Recurrence()),
		Weekdays:   t.WeekdayMask().String(),
		CreatedAt:  t.CreatedAt(),
	}
	if g := t.GoalTime(); g != nil {
		dto.GoalTime = g.String()
	}
	return dto
}

// ListTasksQuery lists active tasks.
type ListTasksQuery struct {
	// Category filters case-insensitively when set.
	Category      string
	ImportantOnly bool
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	repo domain.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(repo domain.Repository) *ListTasksHandler {
	return &ListTasksHandler{repo: repo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasksQuery) ([]TaskDTO, error) {
	tasks, err := h.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		if q.ImportantOnly && !t.IsImportant() {
			continue
		}
		if q.Category != "" && !strings.EqualFold(q.Category, t.Category()) {
			continue
		}
		out = append(out, ToDTO(t))
	}
	return out, nil
}
