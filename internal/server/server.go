// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the workspace registry and
// injects it into every tool. No graph logic lives here — only wiring.
package server

import (
	"github.com/conductor-mcp/conductor/internal/prompts"
	"github.com/conductor-mcp/conductor/internal/tools"
	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and prompts
// registered. This is the single place where dependencies are resolved.
func New() *server.MCPServer {
	workspaces := workspace.NewRegistry()

	s := server.NewMCPServer(
		"conductor",
		Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	setGoals := tools.NewSetGoalsTool(workspaces)
	s.AddTool(setGoals.Definition(), setGoals.Handle)

	addPrereqs := tools.NewAddPrerequisitesTool(workspaces)
	s.AddTool(addPrereqs.Definition(), addPrereqs.Handle)

	planGoal := tools.NewPlanGoalTool(workspaces)
	s.AddTool(planGoal.Definition(), planGoal.Handle)

	markGoals := tools.NewMarkGoalsTool(workspaces)
	s.AddTool(markGoals.Definition(), markGoals.Handle)

	assessGoal := tools.NewAssessGoalTool(workspaces)
	s.AddTool(assessGoal.Definition(), assessGoal.Handle)

	resetWorkspace := tools.NewResetWorkspaceTool(workspaces)
	s.AddTool(resetWorkspace.Definition(), resetWorkspace.Handle)

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use Conductor effectively.
func serverInstructions() string {
	return `You have access to Conductor, a goal dependency tracker for multi-step work.

## What Conductor is

Conductor keeps a graph of named goals per session. Each goal has a
description, a completion flag, and prerequisite goals ("steps") that must
be completed before it is ready. Conductor answers three questions:
what is unblocked right now, what is the full ordered plan, and is this
goal well-formed. It never schedules wall-clock time and never completes
goals on its own — completing a goal is always your explicit call.

## When to use it

Use Conductor whenever work has more than a couple of dependent steps:
project plans, migrations, multi-stage implementations, anything where
"what can I do next" is worth tracking. Declare the goals up front, then
drive the loop: plan_goal → do the work → mark_goals → repeat.

## Declaring goals (set_goals)

- Each goal needs an id (stable, case-sensitive, any text) and a description.
- Express steps whichever way is natural:
  - prerequisites: ids this goal waits on
  - required_for: ids that wait on this goal
  - steps_text: an indented tree; every nested line becomes a goal and a
    prerequisite of its parent line. Line format 'id' or 'id: description'.
- The batch is atomic. A circular dependency rejects the whole batch and
  names the goals on the cycle — remove an edge and resubmit.
- Referencing a prerequisite id you have not defined yet is fine; it is
  reported as a warning and plans will tell you to define it.
- Re-declaring an id updates the description and adds prerequisites; it
  never removes edges.

## Working the graph

- assess_goal tells you a goal's state: READY, BLOCKED (with the incomplete
  prerequisites and completion progress), NEEDS_DEFINITION (with the
  undefined ids), or COMPLETE.
- plan_goal returns the ordered steps for a goal, prerequisites first.
  Undefined prerequisites appear as explicit "define" steps.
- mark_goals with completed=true records finished work and lists which
  goals became ready — good candidates for the next plan_goal call.
- mark_goals with completed=false reopens a goal after a regression;
  everything that transitively depended on it reopens automatically, so
  the graph never claims a goal is done while its prerequisites are not.

## Important rules

- Goal ids are opaque: 'Phase 1' and 'phase 1' are different goals.
- Complete goals only when the work is actually done — Conductor trusts you.
- reset_workspace erases the session's graph; use it only to start over.`
}
