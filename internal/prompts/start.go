// Package prompts implements MCP prompt handlers for the goal workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the conductor-start MCP prompt.
// It guides the AI through declaring a goal graph and driving it to
// completion with the planning tools.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("conductor-start",
		mcp.WithPromptDescription(
			"Start planning a piece of multi-step work with Conductor. "+
				"This will guide you through declaring goals and their prerequisites, "+
				"checking feasibility, and working through an ordered plan.",
		),
		mcp.WithArgument("objective",
			mcp.ArgumentDescription("One sentence describing the end goal of the work"),
		),
	)
}

// Handle processes the conductor-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	objective := "my objective"
	if args := req.Params.Arguments; args != nil {
		if o, ok := args["objective"]; ok && o != "" {
			objective = o
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Plan with Conductor: %s", objective),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to plan and track this work with Conductor: '%s'.\n\n"+
						"Please:\n"+
						"1. Break the objective into goals and call `set_goals` — give each goal an id, "+
						"a description, and its prerequisite steps (use steps_text for a whole subtree at once)\n"+
						"2. Call `assess_goal` on the top-level goal and resolve anything it flags "+
						"(undefined prerequisites, goals needing more definition)\n"+
						"3. Call `plan_goal` to get the ordered plan and start on the first step\n"+
						"4. After finishing each step, call `mark_goals` with completed=true and "+
						"follow the became-ready suggestions\n"+
						"5. If something turns out to be wrong, reopen the affected goal with "+
						"mark_goals completed=false — dependents reopen automatically",
					objective,
				)),
			},
		},
	}, nil
}
