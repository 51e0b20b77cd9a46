package queries

import (
	"context"

	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// GetTaskHandler loads one task.
type GetTaskHandler struct {
	repo domain.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(repo domain.Repository) *GetTaskHandler {
	return &GetTaskHandler{repo: repo}
}

// Handle returns the task with the given id.
func (h *GetTaskHandler) Handle(ctx context.Context, id int64) (*TaskDTO, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidTaskID
	}
	t, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(t)
	return &dto, nil
}
