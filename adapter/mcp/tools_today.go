package mcp

import (
	"context"
	"errors"

	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/today/application/services"
	"github.com/felixgeelhaar/mcp-go"
)

type dateInput struct {
	Date string `json:"date,omitempty"`
}

type transitionInput struct {
	ItemID  int64  `json:"item_id" jsonschema:"required"`
	Status  string `json:"status" jsonschema:"required"`
	DeferTo string `json:"defer_to,omitempty"`
}

type refreshOutput struct {
	Date      string   `json:"date"`
	Generated int      `json:"generated"`
	Achieved  []string `json:"achieved"`
	Streak    int      `json:"streak"`
	Best      int      `json:"best_streak"`
}

type transitionOutput struct {
	ItemID              int64    `json:"item_id"`
	From                string   `json:"from"`
	To                  string   `json:"to"`
	DeferredTo          string   `json:"deferred_to,omitempty"`
	DeferredItemCreated bool     `json:"deferred_item_created"`
	Achieved            []string `json:"achieved"`
	Streak              int      `json:"streak"`
}

func registerTodayTools(srv *mcp.Server, t tools) {
	srv.Tool("today.refresh").
		Description("Generate the day's items and resync quests and streak").
		Handler(t.refresh)

	srv.Tool("today.list").
		Description("Refresh a day and return its checklist, quests and streak").
		Handler(t.todayList)

	srv.Tool("today.transition").
		Description("Set an item's status (TODO, DONE, DEFERRED, SKIPPED)").
		Handler(t.transition)
}

func (t tools) refresh(ctx context.Context, input dateInput) (*refreshOutput, error) {
	app, err := t.require()
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.Date, app.Today())
	if err != nil {
		return nil, err
	}

	result, err := app.Refresher.EnsureTodayReady(ctx, date, app.Now())
	if err != nil {
		return nil, err
	}
	out := &refreshOutput{
		Date:      result.Date.String(),
		Generated: result.Generated,
		Achieved:  []string{},
		Streak:    result.Streak.Current,
		Best:      result.Streak.Best,
	}
	for _, q := range result.Achieved {
		out.Achieved = append(out.Achieved, string(q.Type))
	}
	return out, nil
}

func (t tools) todayList(ctx context.Context, input dateInput) (*todayQueries.TodayView, error) {
	app, err := t.require()
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.Date, app.Today())
	if err != nil {
		return nil, err
	}
	if _, err := app.Refresher.EnsureTodayReady(ctx, date, app.Now()); err != nil {
		return nil, err
	}
	return app.TodayTasksHandler.Handle(ctx, date)
}

func (t tools) transition(ctx context.Context, input transitionInput) (*transitionOutput, error) {
	app, err := t.require()
	if err != nil {
		return nil, err
	}
	if input.ItemID <= 0 {
		return nil, errors.New("item_id is required")
	}
	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	cmd := services.TransitionCommand{ItemID: input.ItemID, To: status, Now: app.Now()}
	if input.DeferTo != "" {
		if cmd.DeferTo, err = parseDate(input.DeferTo, ""); err != nil {
			return nil, err
		}
	}

	outcome, err := app.Refresher.ApplyStatusTransition(ctx, cmd)
	if err != nil {
		return nil, err
	}
	out := &transitionOutput{
		ItemID:              outcome.Item.ID,
		From:                string(outcome.Previous),
		To:                  string(outcome.Item.Status),
		DeferredTo:          outcome.Item.DeferredTo.String(),
		DeferredItemCreated: outcome.DeferredItemCreated,
		Achieved:            []string{},
		Streak:              outcome.Streak.Current,
	}
	for _, q := range outcome.Achieved {
		out.Achieved = append(out.Achieved, string(q.Type))
	}
	return out, nil
}
