package tools

import (
	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
)

// AllTools returns every tool this server can expose, before filtering.
func AllTools() []inventory.ServerTool {
	return []inventory.ServerTool{
		IssuesTool(),
		ReleasesTool(),
		RepositoriesTool(),
		FilesTool(),
		WebhooksTool(),
		ActionsTool(),
		WorkflowsTool(),
		DeploymentsTool(),
		SecurityTool(),
		AnalyticsTool(),
		CodeReviewTool(),
		GitBundleTool(),
	}
}

// NewInventory builds the filtered tool inventory from run configuration.
func NewInventory(toolsets []string, additionalTools []string, readOnly bool) *inventory.Inventory {
	return inventory.NewBuilder().
		SetTools(AllTools()).
		WithToolsets(toolsets).
		WithTools(additionalTools).
		WithReadOnly(readOnly).
		Build()
}
