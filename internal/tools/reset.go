package tools

import (
	"context"

	"github.com/conductor-mcp/conductor/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
)

// ResetWorkspaceTool handles the reset_workspace MCP tool. It clears the
// calling session's goal graph and nothing else; other sessions are
// untouched. Intended for test isolation.
type ResetWorkspaceTool struct {
	workspaces *workspace.Registry
}

// NewResetWorkspaceTool creates a ResetWorkspaceTool backed by the given
// registry.
func NewResetWorkspaceTool(ws *workspace.Registry) *ResetWorkspaceTool {
	return &ResetWorkspaceTool{workspaces: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *ResetWorkspaceTool) Definition() mcp.Tool {
	return mcp.NewTool("reset_workspace",
		mcp.WithDescription(
			"Clear every goal in the current session's workspace. "+
				"Other sessions are unaffected. Intended for test isolation.",
		),
	)
}

// Handle processes the reset_workspace tool call.
func (t *ResetWorkspaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.workspaces.Reset(sessionKey(ctx))
	return mcp.NewToolResultText("Workspace reset. All goals for this session have been cleared."), nil
}
