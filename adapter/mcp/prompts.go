package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common DayQuest workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_review").
		Description("Walk through today's checklist and close out the day.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Daily Review",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me review my day. Please:

1. Read the dayquest://today resource to see my checklist and quest progress
2. Ask which open items I finished and mark them with today.transition (status DONE)
3. For anything I will not get to, suggest deferring it (status DEFERRED) or skipping it (status SKIPPED)
4. Tell me which quests are still open and what it takes to achieve them
5. Finish with my current streak from streak.get`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("weekly_report").
		Description("Summarize completion over the last week.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Weekly Report",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Use history.summary with days=7 and summarize my week: the overall completion
rate, my best and worst days, and how many items I deferred. Suggest one
task definition I could adjust with task.save to make next week easier.`,
						},
					},
				},
			}, nil
		})

	return nil
}
