// Package inventory holds the catalog of server tools and the filtering
// applied when registering them with an MCP server.
package inventory

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolsetID is a unique identifier for a toolset.
// Using a distinct type provides compile-time type safety.
type ToolsetID string

// ToolsetMetadata contains metadata about the toolset a tool belongs to.
type ToolsetMetadata struct {
	// ID is the unique identifier for the toolset (e.g., "issues", "releases")
	ID ToolsetID
	// Description provides a human-readable description of the toolset
	Description string
	// Default indicates this toolset should be enabled by default
	Default bool
}

// ServerTool represents an MCP tool with toolset metadata and a handler.
// The tool definition is static; read-only status is derived from
// Tool.Annotations.ReadOnlyHint.
type ServerTool struct {
	// Tool is the MCP tool definition containing name, description, schema, etc.
	Tool mcp.Tool

	// Toolset contains metadata about which toolset this tool belongs to.
	Toolset ToolsetMetadata

	// Handler is the MCP handler invoked for this tool. Dependencies are
	// retrieved from the request context at call time, so no closures are
	// created at registration time.
	Handler mcp.ToolHandler
}

// IsReadOnly returns true if this tool is marked as read-only via annotations.
func (st *ServerTool) IsReadOnly() bool {
	return st.Tool.Annotations != nil && st.Tool.Annotations.ReadOnlyHint
}

// Register registers the tool with the server. A shallow copy of the tool is
// made to avoid mutating the original ServerTool.
func (st *ServerTool) Register(s *mcp.Server) {
	if st.Handler == nil {
		panic("Handler is nil for tool: " + st.Tool.Name)
	}
	toolCopy := st.Tool
	s.AddTool(&toolCopy, st.Handler)
}

// NewServerToolFromHandler creates a ServerTool from a raw mcp.ToolHandler.
func NewServerToolFromHandler(tool mcp.Tool, toolset ToolsetMetadata, handler mcp.ToolHandler) ServerTool {
	return ServerTool{Tool: tool, Toolset: toolset, Handler: handler}
}
