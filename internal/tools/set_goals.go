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

// SetGoalsTool handles the set_goals MCP tool: the atomic batch
// define/update operation of the goal graph.
type SetGoalsTool struct {
	workspaces *workspace.Registry
}

// NewSetGoalsTool creates a SetGoalsTool backed by the given registry.
func NewSetGoalsTool(ws *workspace.Registry) *SetGoalsTool {
	return &SetGoalsTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *SetGoalsTool) Definition() mcp.Tool {
	return mcp.NewTool("set_goals",
		mcp.WithDescription(
			"Define or update a batch of goals with prerequisite relationships. "+
				"The batch is atomic: a circular dependency anywhere rejects the whole batch. "+
				"Re-declaring an existing id updates its description and adds (never removes) prerequisites. "+
				"Steps can be given as a 'prerequisites' id list, as 'required_for' reverse edges, "+
				"or as 'steps_text' — an indented tree whose nodes become goals automatically.",
		),
		mcp.WithArray("goals",
			mcp.Required(),
			mcp.Description("Goal specifications, applied in order (last write wins within the batch)"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Unique goal id within this session's workspace. Case- and whitespace-sensitive.",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "What completing this goal means. Empty signals the goal still needs definition.",
					},
					"prerequisites": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Ids of goals that must be completed before this one is ready. May name ids not defined yet.",
					},
					"required_for": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Ids of goals this goal is a prerequisite for (reverse edges).",
					},
					"steps_text": map[string]any{
						"type": "string",
						"description": "Indented tree of steps. First line is a header for this goal; " +
							"each nested line becomes a goal and a prerequisite of its parent line. " +
							"Line format: 'id' or 'id: description' (an optional leading 'Step:'-style label is ignored).",
					},
				},
				"required": []string{"id", "description"},
			}),
		),
	)
}

// Handle processes the set_goals tool call.
func (t *SetGoalsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["goals"].([]interface{})
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("'goals' is required and must be a non-empty array"), nil
	}

	batch := make([]goals.Spec, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("goals[%d] must be an object", i)), nil
		}
		spec := goals.Spec{
			ID:            stringField(m, "id"),
			Description:   stringField(m, "description"),
			Prerequisites: stringSliceField(m, "prerequisites"),
			RequiredFor:   stringSliceField(m, "required_for"),
			StepsText:     stringField(m, "steps_text"),
		}
		if err := goals.ValidateID(spec.ID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("goals[%d]: %v", i, err)), nil
		}
		batch = append(batch, spec)
	}

	store := t.workspaces.Get(sessionKey(ctx))
	res, err := store.Define(batch)
	if err != nil {
		var cycle *goals.CycleError
		if errors.As(err, &cycle) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Goals not defined: the batch would create a dependency deadlock among: %s. "+
					"Remove one of the offending prerequisite edges and retry.",
				strings.Join(cycle.IDs, ", "),
			)), nil
		}
		// Malformed tree text and other batch-level rejections.
		return mcp.NewToolResultError(fmt.Sprintf("Goals not defined: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("Goals defined.\n")
	fmt.Fprintf(&b, "\nDefined: %s\n", strings.Join(res.Defined, ", "))
	if len(res.AutoCreated) > 0 {
		fmt.Fprintf(&b, "Auto-created %d step goals: %s\n",
			len(res.AutoCreated), strings.Join(res.AutoCreated, ", "))
	}
	if len(res.Undefined) > 0 {
		fmt.Fprintf(&b,
			"\nWarning: undefined prerequisite goals: %s. "+
				"Define them with set_goals, or plans will include definition placeholders.\n",
			strings.Join(res.Undefined, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}
