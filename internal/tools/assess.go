package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/conductor-mcp/conductor/internal/goals"
	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// AssessGoalTool handles the assess_goal MCP tool: the on-demand
// readiness and well-formedness classification of one goal.
type AssessGoalTool struct {
	workspaces *workspace.Registry
}

// NewAssessGoalTool creates an AssessGoalTool backed by the given
// registry.
func NewAssessGoalTool(ws *workspace.Registry) *AssessGoalTool {
	return &AssessGoalTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *AssessGoalTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_goal",
		mcp.WithDescription(
			"Assess one goal: UNDEFINED (no such goal), NEEDS_DEFINITION (its "+
				"prerequisite closure references undeclared ids), BLOCKED (well-defined "+
				"but prerequisites incomplete), READY (all prerequisites met), or "+
				"COMPLETE. Includes completion progress over the prerequisite closure.",
		),
		mcp.WithString("goal_id",
			mcp.Required(),
			mcp.Description("Id of the goal to assess"),
		),
	)
}

// Handle processes the assess_goal tool call.
func (t *AssessGoalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID := req.GetString("goal_id", "")
	if goalID == "" {
		return mcp.NewToolResultError("'goal_id' is required"), nil
	}

	store := t.workspaces.Get(sessionKey(ctx))
	a := store.Assess(goalID)

	if a.State == goals.StateUndefined {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Goal '%s' not found. Define it with set_goals first.", goalID)), nil
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("State: %s", a.State))

	switch a.State {
	case goals.StateComplete:
		lines = append(lines, "The goal is complete.")
	case goals.StateNeedsDefinition:
		lines = append(lines, fmt.Sprintf(
			"The goal has undefined prerequisite goals: %s. Define them with set_goals first.",
			strings.Join(a.UndefinedPrereqs, ", ")))
		if len(a.Incomplete) > 0 {
			lines = append(lines, fmt.Sprintf(
				"Incomplete prerequisite goals: %s.", strings.Join(a.Incomplete, ", ")))
		}
	case goals.StateReady:
		goal, _ := store.Get(goalID)
		if goal != nil && goal.Description != "" {
			lines = append(lines, fmt.Sprintf(
				"All prerequisite goals are met. The goal is ready: %s", goal.Description))
		} else {
			lines = append(lines, "All prerequisite goals are met. The goal is ready.")
		}
	case goals.StateBlocked:
		lines = append(lines, "The goal is well-defined, but some prerequisite goals are incomplete.")
		lines = append(lines, fmt.Sprintf("Completion: %d/%d (%d%%) goals completed.",
			a.ClosureDone, a.ClosureTotal, 100*a.ClosureDone/a.ClosureTotal))
		lines = append(lines, fmt.Sprintf(
			"Incomplete prerequisite goals: %s.", strings.Join(a.Incomplete, ", ")))
	}

	if len(a.NeedsDetail) > 0 && a.State != goals.StateComplete {
		lines = append(lines, fmt.Sprintf(
			"These step goals need more definition (empty description): %s.",
			strings.Join(a.NeedsDetail, ", ")))
	}

	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
