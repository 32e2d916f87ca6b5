package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/conductor-mcp/conductor/internal/goals"
	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// MarkGoalsTool handles the mark_goals MCP tool: completing goals (with
// became-ready notifications) and reopening them (with the dependent
// cascade).
type MarkGoalsTool struct {
	workspaces *workspace.Registry
}

// NewMarkGoalsTool creates a MarkGoalsTool backed by the given registry.
func NewMarkGoalsTool(ws *workspace.Registry) *MarkGoalsTool {
	return &MarkGoalsTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *MarkGoalsTool) Definition() mcp.Tool {
	return mcp.NewTool("mark_goals",
		mcp.WithDescription(
			"Mark goals completed or reopen them. Completing a goal reports which "+
				"dependent goals became ready (advisory — they are never auto-completed). "+
				"Reopening a goal also reopens every goal that transitively depends on it. "+
				"Each goal is processed independently; unknown ids are reported without "+
				"aborting the rest.",
		),
		mcp.WithArray("goal_ids",
			mcp.Required(),
			mcp.Description("Ids of the goals to update"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("completed",
			mcp.Required(),
			mcp.Description("true to mark completed, false to reopen"),
		),
	)
}

// Handle processes the mark_goals tool call.
func (t *MarkGoalsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := stringSliceArg(req, "goal_ids")
	if len(ids) == 0 {
		return mcp.NewToolResultError("'goal_ids' is required and must be a non-empty array"), nil
	}
	completed, ok := boolArg(req, "completed")
	if !ok {
		return mcp.NewToolResultError("'completed' is required"), nil
	}

	store := t.workspaces.Get(sessionKey(ctx))
	if completed {
		return t.complete(store, ids)
	}
	return t.reopen(store, ids)
}

func (t *MarkGoalsTool) complete(store *goals.Store, ids []string) (*mcp.CallToolResult, error) {
	res := store.MarkComplete(ids)

	var lines []string
	if len(res.Updated) > 0 {
		lines = append(lines, fmt.Sprintf("Marked as completed: %s", strings.Join(res.Updated, ", ")))
	}
	if len(res.Unchanged) > 0 {
		lines = append(lines, fmt.Sprintf("Already completed: %s", strings.Join(res.Unchanged, ", ")))
	}
	if len(res.Unknown) > 0 {
		lines = append(lines, fmt.Sprintf("Not found: %s", strings.Join(res.Unknown, ", ")))
	}
	if len(res.BecameReady) > 0 {
		ready := make([]string, len(res.BecameReady))
		for i, n := range res.BecameReady {
			ready[i] = n.ID
		}
		lines = append(lines, fmt.Sprintf("You may want to call plan_goal for: %s", strings.Join(ready, ", ")))
	}

	if len(res.Updated) == 0 && len(res.Unchanged) == 0 {
		return mcp.NewToolResultError(strings.Join(lines, "\n")), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (t *MarkGoalsTool) reopen(store *goals.Store, ids []string) (*mcp.CallToolResult, error) {
	res := store.MarkIncomplete(ids)

	var lines []string
	if len(res.Updated) > 0 {
		lines = append(lines, fmt.Sprintf("Reopened: %s", strings.Join(res.Updated, ", ")))
	}
	if len(res.Cascaded) > 0 {
		lines = append(lines, fmt.Sprintf(
			"The following dependent goals were also reopened: %s", strings.Join(res.Cascaded, ", ")))
	}
	if len(res.Unchanged) > 0 {
		lines = append(lines, fmt.Sprintf("Already open: %s", strings.Join(res.Unchanged, ", ")))
	}
	if len(res.Unknown) > 0 {
		lines = append(lines, fmt.Sprintf("Not found: %s", strings.Join(res.Unknown, ", ")))
	}

	if len(res.Updated) == 0 && len(res.Unchanged) == 0 {
		return mcp.NewToolResultError(strings.Join(lines, "\n")), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
