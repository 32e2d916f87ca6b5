package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conductor-mcp/conductor/internal/goals"
	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlanGoalTool handles the plan_goal MCP tool: the ordered execution plan
// for one goal's prerequisite closure.
type PlanGoalTool struct {
	workspaces *workspace.Registry
}

// NewPlanGoalTool creates a PlanGoalTool backed by the given registry.
func NewPlanGoalTool(ws *workspace.Registry) *PlanGoalTool {
	return &PlanGoalTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanGoalTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_goal",
		mcp.WithDescription(
			"Produce the ordered plan for a goal: every not-yet-complete goal in its "+
				"prerequisite closure, ordered so each goal appears after all of its "+
				"prerequisites. Undefined prerequisites appear as 'define' steps in "+
				"their correct position. The plan is deterministic for an unchanged graph.",
		),
		mcp.WithString("goal_id",
			mcp.Required(),
			mcp.Description("Id of the goal to plan for"),
		),
		mcp.WithNumber("max_steps",
			mcp.Description("Truncate the plan to its first N steps (closest to ready first)"),
		),
	)
}

// Handle processes the plan_goal tool call.
func (t *PlanGoalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID := req.GetString("goal_id", "")
	if goalID == "" {
		return mcp.NewToolResultError("'goal_id' is required"), nil
	}
	maxSteps := int(req.GetFloat("max_steps", 0))

	store := t.workspaces.Get(sessionKey(ctx))
	steps, err := store.Plan(goalID, 0)
	if err != nil {
		var unknown *goals.UnknownGoalError
		if errors.As(err, &unknown) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Goal '%s' not found. Define it with set_goals first.", goalID)), nil
		}
		return nil, fmt.Errorf("planning goal %q: %w", goalID, err)
	}

	if len(steps) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Goal '%s' is already completed. Nothing left to plan.", goalID)), nil
	}

	total := len(steps)
	truncated := maxSteps > 0 && total > maxSteps
	if truncated {
		steps = steps[:maxSteps]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Plan for goal '%s'\n\n", goalID)
	for i, step := range steps {
		switch step.Action {
		case goals.ActionDefine:
			fmt.Fprintf(&b, "%d. Define missing prerequisite goal: '%s'\n", i+1, step.ID)
		default:
			desc := step.Description
			if desc == "" {
				desc = "Details to be determined."
			}
			fmt.Fprintf(&b, "%d. Complete goal: '%s' - %s\n", i+1, step.ID, desc)
		}
	}
	if truncated {
		fmt.Fprintf(&b, "\nShowing the first %d of %d steps.\n", maxSteps, total)
	}
	return mcp.NewToolResultText(b.String()), nil
}
