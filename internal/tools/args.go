// Package tools implements the MCP tool bindings for the goal graph
// engine. Each tool is a struct with a Definition for registration and a
// Handle method. Tools resolve the caller's workspace from the client
// session, translate arguments, and relay the engine's results as text;
// no graph logic lives here.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// sessionKey returns the workspace key for a call: the MCP client session
// id when the transport supplies one, otherwise a shared default key
// (direct handler invocations, as in tests, have no session).
func sessionKey(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil {
		if id := cs.SessionID(); id != "" {
			return id
		}
	}
	return "default"
}

// boolArg extracts a bool argument, reporting whether it was present.
func boolArg(req mcp.CallToolRequest, key string) (bool, bool) {
	v, ok := req.GetArguments()[key].(bool)
	return v, ok
}

// stringSliceArg coerces an array argument to []string, skipping entries
// of other types.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]interface{})
	if !ok {
		return nil
	}
	return toStringSlice(raw)
}

func toStringSlice(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringField reads a string member of a decoded JSON object.
func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// stringSliceField reads an array-of-strings member of a decoded JSON
// object.
func stringSliceField(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	return toStringSlice(raw)
}
