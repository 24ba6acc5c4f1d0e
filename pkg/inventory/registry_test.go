package inventory

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTool(name string, toolset ToolsetMetadata, readOnly bool) ServerTool {
	return NewServerToolFromHandler(
		mcp.Tool{
			Name:        name,
			Description: name + " test tool",
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: readOnly},
		},
		toolset,
		func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{}, nil
		},
	)
}

var (
	testToolsetIssues    = ToolsetMetadata{ID: "issues", Description: "Issue tools", Default: true}
	testToolsetReleases  = ToolsetMetadata{ID: "releases", Description: "Release tools", Default: true}
	testToolsetAnalytics = ToolsetMetadata{ID: "analytics", Description: "Analytics tools", Default: false}
)

func testTools() []ServerTool {
	return []ServerTool{
		makeTool("issues", testToolsetIssues, false),
		makeTool("releases", testToolsetReleases, false),
		makeTool("analytics", testToolsetAnalytics, true),
	}
}

func TestBuilder_DefaultToolsets(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).Build()

	names := toolNames(inv.AvailableTools())
	assert.Equal(t, []string{"issues", "releases"}, names, "non-default toolsets are excluded by default")
	assert.Equal(t, []ToolsetID{"issues", "releases"}, inv.DefaultToolsetIDs())
	assert.Equal(t, []ToolsetID{"analytics", "issues", "releases"}, inv.ToolsetIDs())
}

func TestBuilder_AllKeyword(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{"all"}).Build()
	assert.Equal(t, []string{"analytics", "issues", "releases"}, toolNames(inv.AvailableTools()))
}

func TestBuilder_ExplicitToolsets(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{"analytics", " issues "}).Build()
	assert.Equal(t, []string{"analytics", "issues"}, toolNames(inv.AvailableTools()))
}

func TestBuilder_EmptyToolsetsDisablesAll(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{}).Build()
	assert.Empty(t, inv.AvailableTools())
}

func TestBuilder_UnrecognizedToolsets(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{"issues", "bogus"}).Build()
	assert.Equal(t, []string{"bogus"}, inv.UnrecognizedToolsets())
}

func TestBuilder_ReadOnly(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{"all"}).WithReadOnly(true).Build()
	assert.Equal(t, []string{"analytics"}, toolNames(inv.AvailableTools()), "write tools are filtered out in read-only mode")
}

func TestBuilder_AdditionalToolsBypassToolsetFilter(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).WithToolsets([]string{"issues"}).WithTools([]string{"analytics"}).Build()
	assert.Equal(t, []string{"analytics", "issues"}, toolNames(inv.AvailableTools()))
}

func TestInventory_FindToolByName(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).Build()

	tool, toolsetID, err := inv.FindToolByName("releases")
	require.NoError(t, err)
	assert.Equal(t, "releases", tool.Tool.Name)
	assert.Equal(t, ToolsetID("releases"), toolsetID)

	_, _, err = inv.FindToolByName("nope")
	require.Error(t, err)
	assert.Equal(t, "tool nope does not exist", err.Error())
}

func TestInventory_HasToolset(t *testing.T) {
	inv := NewBuilder().SetTools(testTools()).Build()
	assert.True(t, inv.HasToolset("analytics"))
	assert.False(t, inv.HasToolset("webhooks"))
}

func toolNames(tools []ServerTool) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Tool.Name)
	}
	return names
}
