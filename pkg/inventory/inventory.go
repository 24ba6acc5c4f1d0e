package inventory

import (
	"slices"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Inventory holds a collection of tools with filtering applied.
// Create an Inventory using Builder:
//
//	inv := NewBuilder().
//	    SetTools(tools).
//	    WithReadOnly(true).
//	    WithToolsets([]string{"issues"}).
//	    Build()
//
// The Inventory is configured at build time and provides filtered access to
// tools via AvailableTools, deterministic ordering for documentation output,
// and registration with an MCP server via RegisterAll.
type Inventory struct {
	// tools holds all tools in this inventory (ordered for iteration)
	tools []ServerTool

	// Pre-computed toolset metadata (set during Build)
	toolsetIDs          []ToolsetID          // sorted list of all toolset IDs
	toolsetIDSet        map[ToolsetID]bool   // set for O(1) HasToolset lookup
	defaultToolsetIDs   []ToolsetID          // sorted list of default toolset IDs
	toolsetDescriptions map[ToolsetID]string // toolset ID -> description

	// Filters - these control what's returned by AvailableTools
	// readOnly when true filters out write tools
	readOnly bool
	// enabledToolsets when non-nil, only include tools from these toolsets;
	// when nil, all toolsets are enabled
	enabledToolsets map[ToolsetID]bool
	// additionalTools are specific tools that bypass toolset filtering
	// (but still respect read-only)
	additionalTools map[string]bool
	// unrecognizedToolsets holds toolset IDs that were requested but don't
	// match any registered toolsets
	unrecognizedToolsets []string
}

// UnrecognizedToolsets returns toolset IDs that were passed to WithToolsets
// but don't match any registered toolsets. Useful for warning about typos.
func (r *Inventory) UnrecognizedToolsets() []string {
	return r.unrecognizedToolsets
}

// ToolsetIDs returns a sorted list of unique toolset IDs from all tools.
func (r *Inventory) ToolsetIDs() []ToolsetID {
	return r.toolsetIDs
}

// DefaultToolsetIDs returns the IDs of toolsets marked as Default in their
// metadata, in sorted order.
func (r *Inventory) DefaultToolsetIDs() []ToolsetID {
	return r.defaultToolsetIDs
}

// ToolsetDescriptions returns a map of toolset ID to description.
func (r *Inventory) ToolsetDescriptions() map[ToolsetID]string {
	return r.toolsetDescriptions
}

// HasToolset checks if any tool belongs to the given toolset.
func (r *Inventory) HasToolset(toolsetID ToolsetID) bool {
	return r.toolsetIDSet[toolsetID]
}

func (r *Inventory) isToolsetEnabled(toolsetID ToolsetID) bool {
	if r.enabledToolsets != nil {
		return r.enabledToolsets[toolsetID]
	}
	return true
}

// isToolEnabled checks if a specific tool passes the current filters.
// Read-only filtering applies to all tools; additional tools bypass only
// the toolset filter.
func (r *Inventory) isToolEnabled(tool *ServerTool) bool {
	if r.readOnly && !tool.IsReadOnly() {
		return false
	}
	if r.additionalTools != nil && r.additionalTools[tool.Tool.Name] {
		return true
	}
	return r.isToolsetEnabled(tool.Toolset.ID)
}

// AvailableTools returns the tools that pass all current filters,
// sorted deterministically by toolset ID, then tool name.
func (r *Inventory) AvailableTools() []ServerTool {
	var result []ServerTool
	for i := range r.tools {
		tool := &r.tools[i]
		if r.isToolEnabled(tool) {
			result = append(result, *tool)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Toolset.ID != result[j].Toolset.ID {
			return result[i].Toolset.ID < result[j].Toolset.ID
		}
		return result[i].Tool.Name < result[j].Tool.Name
	})

	return result
}

// AllTools returns all tools without any filtering, sorted deterministically.
func (r *Inventory) AllTools() []ServerTool {
	result := slices.Clone(r.tools)

	sort.Slice(result, func(i, j int) bool {
		if result[i].Toolset.ID != result[j].Toolset.ID {
			return result[i].Toolset.ID < result[j].Toolset.ID
		}
		return result[i].Tool.Name < result[j].Tool.Name
	})

	return result
}

// FindToolByName searches all tools for one matching the given name.
// Returns the tool, its toolset ID, and an error if not found.
// This searches ALL tools regardless of filters.
func (r *Inventory) FindToolByName(toolName string) (*ServerTool, ToolsetID, error) {
	for i := range r.tools {
		if r.tools[i].Tool.Name == toolName {
			return &r.tools[i], r.tools[i].Toolset.ID, nil
		}
	}
	return nil, "", NewToolDoesNotExistError(toolName)
}

// AvailableToolsets returns the unique toolsets that have tools, in sorted
// order. Only toolsets that actually contain tools are returned.
func (r *Inventory) AvailableToolsets() []ToolsetMetadata {
	tools := r.AllTools()
	if len(tools) == 0 {
		return nil
	}

	var result []ToolsetMetadata
	var lastID ToolsetID
	for _, tool := range tools {
		if tool.Toolset.ID != lastID {
			lastID = tool.Toolset.ID
			result = append(result, tool.Toolset)
		}
	}
	return result
}

// RegisterAll registers all available tools with the server.
func (r *Inventory) RegisterAll(s *mcp.Server) {
	for _, tool := range r.AvailableTools() {
		tool.Register(s)
	}
}
