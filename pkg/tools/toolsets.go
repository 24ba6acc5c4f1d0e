package tools

import (
	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
)

// Toolset metadata for every tool this server exposes. Analytics is opt-in
// since traffic and statistics endpoints are expensive and rarely needed by
// default agent workflows.
var (
	ToolsetIssues = inventory.ToolsetMetadata{
		ID:          "issues",
		Description: "Create, list, update, comment on and close issues",
		Default:     true,
	}
	ToolsetReleases = inventory.ToolsetMetadata{
		ID:          "releases",
		Description: "Manage releases and tags",
		Default:     true,
	}
	ToolsetRepositories = inventory.ToolsetMetadata{
		ID:          "repositories",
		Description: "Create, configure, fork, search and transfer repositories",
		Default:     true,
	}
	ToolsetFiles = inventory.ToolsetMetadata{
		ID:          "files",
		Description: "Read and write repository file contents",
		Default:     true,
	}
	ToolsetWebhooks = inventory.ToolsetMetadata{
		ID:          "webhooks",
		Description: "Manage repository webhooks",
		Default:     true,
	}
	ToolsetActions = inventory.ToolsetMetadata{
		ID:          "actions",
		Description: "Inspect and control CI workflow runs, jobs and artifacts",
		Default:     true,
	}
	ToolsetWorkflows = inventory.ToolsetMetadata{
		ID:          "workflows",
		Description: "Manage workflow definitions and trigger runs",
		Default:     true,
	}
	ToolsetDeployments = inventory.ToolsetMetadata{
		ID:          "deployments",
		Description: "Manage deployments and environments",
		Default:     true,
	}
	ToolsetSecurity = inventory.ToolsetMetadata{
		ID:          "security",
		Description: "Security scanning, alerts, advisories and dependency data",
		Default:     true,
	}
	ToolsetAnalytics = inventory.ToolsetMetadata{
		ID:          "analytics",
		Description: "Repository traffic, contributor and activity statistics",
		Default:     false,
	}
	ToolsetCodeReview = inventory.ToolsetMetadata{
		ID:          "code-review",
		Description: "Pull request reviews, review comments and suggestions",
		Default:     true,
	}
	ToolsetGitBundle = inventory.ToolsetMetadata{
		ID:          "git-bundle",
		Description: "Create and inspect local git bundles",
		Default:     true,
	}
)
