package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// AnalyticsTool surfaces repository statistics. All actions are read-only:
// traffic, contributors, activity, performance, report, trends, insights.
func AnalyticsTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Analytics operation to perform.",
			"traffic", "contributors", "activity", "performance", "report", "trends", "insights"),
		"provider": providerSchema(),
		"owner":    ownerSchema(),
		"repo":     repoSchema(),
	}
	paginationSchema(props)

	requires := []string{"owner", "repo"}

	return NewActionTool(
		mcp.Tool{
			Name:        "repository_analytics",
			Description: "Repository statistics: traffic, contributors, commit activity, performance metrics, combined reports, trends and insights.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetAnalytics,
		map[string]Action{
			"traffic":      {ReadOnly: true, Requires: requires, Handler: analyticsTraffic},
			"contributors": {ReadOnly: true, Requires: requires, Handler: analyticsContributors},
			"activity":     {ReadOnly: true, Requires: requires, Handler: analyticsActivity},
			"performance":  {ReadOnly: true, Requires: requires, Handler: analyticsPerformance},
			"report":       {ReadOnly: true, Requires: requires, Handler: analyticsReport},
			"trends":       {ReadOnly: true, Requires: requires, Handler: analyticsTrends},
			"insights":     {ReadOnly: true, Requires: requires, Handler: analyticsInsights},
		},
		WithAutoDetectOwner(),
	)
}

func analyticsCapability(p provider.Provider) (provider.Analytics, error) {
	analytics, ok := p.(provider.Analytics)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "analytics")
	}
	return analytics, nil
}

func analyticsTraffic(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	stats, err := analytics.GetTrafficStats(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get traffic stats: %w", err)
	}
	return stats, fmt.Sprintf("traffic stats for %s/%s", owner, repo), nil
}

func analyticsContributors(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	stats, err := analytics.AnalyzeContributors(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to analyze contributors: %w", err)
	}
	return stats, fmt.Sprintf("contributor analysis for %s/%s", owner, repo), nil
}

func analyticsActivity(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	stats, err := analytics.GetActivityStats(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get activity stats: %w", err)
	}
	return stats, fmt.Sprintf("activity stats for %s/%s", owner, repo), nil
}

func analyticsPerformance(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	metrics, err := analytics.GetPerformanceMetrics(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get performance metrics: %w", err)
	}
	return metrics, fmt.Sprintf("performance metrics for %s/%s", owner, repo), nil
}

func analyticsReport(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	report, err := analytics.GenerateReport(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate report: %w", err)
	}
	return report, fmt.Sprintf("analytics report for %s/%s", owner, repo), nil
}

func analyticsTrends(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	trends, err := analytics.AnalyzeTrends(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to analyze trends: %w", err)
	}
	return trends, fmt.Sprintf("trend analysis for %s/%s", owner, repo), nil
}

func analyticsInsights(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	analytics, err := analyticsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	insights, err := analytics.GetRepositoryInsights(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get repository insights: %w", err)
	}
	return insights, fmt.Sprintf("repository insights for %s/%s", owner, repo), nil
}
