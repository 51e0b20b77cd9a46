package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose DayQuest data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	t := tools{app: deps.App}

	srv.Resource("dayquest://today").
		Name("Today").
		Description("Today's checklist, quests and streak").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			view, err := t.todayList(ctx, dateInput{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, view)
		})

	srv.Resource("dayquest://tasks").
		Name("Tasks").
		Description("All active task definitions").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			tasks, err := t.listTasks(ctx, taskListInput{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("dayquest://history").
		Name("History").
		Description("Completion history over the configured period").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			summary, err := t.historySummary(ctx, historyInput{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, summary)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
