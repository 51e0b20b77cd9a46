package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/felixgeelhaar/mcp-go"
)

type taskSaveInput struct {
	TaskID     int64  `json:"task_id,omitempty"`
	Title      string `json:"title" jsonschema:"required"`
	Category   string `json:"category,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Important  bool   `json:"important,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
	Weekdays   string `json:"weekdays,omitempty"`
	GoalTime   string `json:"goal_time,omitempty"`
}

type taskListInput struct {
	Category      string `json:"category,omitempty"`
	ImportantOnly bool   `json:"important_only,omitempty"`
}

type taskIDInput struct {
	TaskID int64 `json:"task_id" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, t tools) {
	srv.Tool("task.save").
		Description("Create a task definition, or replace one when task_id is set").
		Handler(t.saveTask)

	srv.Tool("task.list").
		Description("List active task definitions").
		Handler(t.listTasks)

	srv.Tool("task.get").
		Description("Get one task definition").
		Handler(func(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
			if t.app == nil || t.app.GetTaskHandler == nil {
				return nil, errors.New("task lookup requires database connection")
			}
			return t.app.GetTaskHandler.Handle(ctx, input.TaskID)
		})

	srv.Tool("task.delete").
		Description("Delete a task definition; generated items are kept").
		Handler(t.deleteTask)
}

func (t tools) saveTask(ctx context.Context, input taskSaveInput) (*commands.SaveTaskResult, error) {
	if t.app == nil || t.app.SaveTaskHandler == nil {
		return nil, errors.New("task saving requires database connection")
	}
	mask, err := domain.ParseWeekdayMask(input.Weekdays)
	if err != nil {
		return nil, err
	}
	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = string(domain.RecurrenceDaily)
	}

	return t.app.SaveTaskHandler.Handle(ctx, commands.SaveTaskCommand{
		TaskID:     input.TaskID,
		Title:      input.Title,
		Category:   input.Category,
		Priority:   input.Priority,
		Important:  input.Important,
		Recurrence: recurrence,
		Mask:       mask,
		GoalTime:   input.GoalTime,
		Now:        t.app.Now(),
	})
}

func (t tools) listTasks(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
	if t.app == nil || t.app.ListTasksHandler == nil {
		return nil, errors.New("task listing requires database connection")
	}
	return t.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
		Category:      input.Category,
		ImportantOnly: input.ImportantOnly,
	})
}

func (t tools) deleteTask(ctx context.Context, input taskIDInput) (map[string]any, error) {
	if t.app == nil || t.app.DeleteTaskHandler == nil {
		return nil, errors.New("task deletion requires database connection")
	}
	if err := t.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: input.TaskID, Now: t.app.Now()}); err != nil {
		return nil, err
	}
	return map[string]any{"task_id": input.TaskID, "deleted": true}, nil
}
