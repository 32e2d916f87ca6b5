package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/conductor-mcp/conductor/internal/goals"
	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddPrerequisitesTool handles the add_prerequisites MCP tool: wiring new
// prerequisite edges onto existing goals after the fact.
type AddPrerequisitesTool struct {
	workspaces *workspace.Registry
}

// NewAddPrerequisitesTool creates an AddPrerequisitesTool backed by the
// given registry.
func NewAddPrerequisitesTool(ws *workspace.Registry) *AddPrerequisitesTool {
	return &AddPrerequisitesTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *AddPrerequisitesTool) Definition() mcp.Tool {
	return mcp.NewTool("add_prerequisites",
		mcp.WithDescription(
			"Add prerequisite edges to existing goals. 'edges' maps each goal id to the "+
				"list of prerequisite ids to add. Each goal's edges are applied atomically "+
				"and independently: a cycle in one goal's edges rejects only that goal's "+
				"edges. The target goal must already exist; missing prerequisite ids are "+
				"created as empty-description placeholder goals.",
		),
		mcp.WithObject("edges",
			mcp.Required(),
			mcp.Description("Map of goal id to an array of prerequisite goal ids, "+
				"e.g. {\"serve_breakfast\": [\"butter_toast\", \"brew_tea\"]}"),
		),
	)
}

// Handle processes the add_prerequisites tool call.
func (t *AddPrerequisitesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["edges"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("'edges' is required and must map goal ids to prerequisite id arrays"), nil
	}

	goalIDs := make([]string, 0, len(raw))
	for id := range raw {
		goalIDs = append(goalIDs, id)
	}
	sort.Strings(goalIDs)

	store := t.workspaces.Get(sessionKey(ctx))

	var lines []string
	failures := 0
	for _, goalID := range goalIDs {
		prereqs, ok := raw[goalID].([]interface{})
		if !ok {
			failures++
			lines = append(lines, fmt.Sprintf("Goal '%s': prerequisite list must be an array of ids.", goalID))
			continue
		}

		res, err := store.AddPrereqs(goalID, toStringSlice(prereqs))
		if err != nil {
			failures++
			var unknown *goals.UnknownGoalError
			var cycle *goals.CycleError
			switch {
			case errors.As(err, &unknown):
				lines = append(lines, fmt.Sprintf(
					"Goal '%s' not found. Define it with set_goals first.", goalID))
			case errors.As(err, &cycle):
				lines = append(lines, fmt.Sprintf(
					"Goal '%s': adding these prerequisites would create a deadlock among: %s. No edges applied for this goal.",
					goalID, strings.Join(cycle.IDs, ", ")))
			default:
				lines = append(lines, fmt.Sprintf("Goal '%s': %v", goalID, err))
			}
			continue
		}

		switch {
		case len(res.Added) == 0 && len(res.Existing) > 0:
			lines = append(lines, fmt.Sprintf(
				"Goal '%s': all requested prerequisites already exist (%s).",
				goalID, strings.Join(res.Existing, ", ")))
		case len(res.Added) == 0:
			lines = append(lines, fmt.Sprintf("Goal '%s': no prerequisites given.", goalID))
		default:
			line := fmt.Sprintf("Added prerequisites to goal '%s': %s.",
				goalID, strings.Join(res.Added, ", "))
			if len(res.Existing) > 0 {
				line += fmt.Sprintf(" Already present: %s.", strings.Join(res.Existing, ", "))
			}
			if len(res.Created) > 0 {
				line += fmt.Sprintf(" Created placeholder goals: %s.", strings.Join(res.Created, ", "))
			}
			lines = append(lines, line)
		}
	}

	text := strings.Join(lines, "\n")
	if failures == len(goalIDs) {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}
