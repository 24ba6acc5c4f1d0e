package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// SecurityTool surfaces security insight endpoints. Actions: scan,
// vulnerabilities, alerts, policies, compliance, dependencies, advisories.
func SecurityTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Security operation to perform.",
			"scan", "vulnerabilities", "alerts", "policies", "compliance", "dependencies", "advisories"),
		"provider":     providerSchema(),
		"owner":        ownerSchema(),
		"repo":         repoSchema(),
		"alert_number": intSchema("Alert number. Required for alerts."),
		"state":        stringSchema("Alert state for alerts (e.g. dismissed, open) or a filter for vulnerabilities."),
		"severity":     stringSchema("Severity filter for vulnerabilities, e.g. critical, high."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_security",
			Description: "Security insights: run scans, list vulnerabilities and advisories, manage alerts, inspect policies, compliance and dependency data.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetSecurity,
		map[string]Action{
			"scan": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityScan,
			},
			"vulnerabilities": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityVulnerabilities,
			},
			"alerts": {
				Requires: []string{"owner", "repo", "alert_number", "state"},
				Handler:  securityAlerts,
			},
			"policies": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityPolicies,
			},
			"compliance": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityCompliance,
			},
			"dependencies": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityDependencies,
			},
			"advisories": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  securityAdvisories,
			},
		},
		WithAutoDetectOwner(),
	)
}

func securityCapability(p provider.Provider) (provider.Security, error) {
	security, ok := p.(provider.Security)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "security")
	}
	return security, nil
}

func securityScan(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	result, err := security.RunSecurityScan(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("security scan failed: %w", err)
	}
	return result, fmt.Sprintf("security scan summary for %s/%s", owner, repo), nil
}

func securityVulnerabilities(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	state, err := OptionalParam[string](args, "state")
	if err != nil {
		return nil, "", err
	}
	severity, err := OptionalParam[string](args, "severity")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	vulns, err := security.ListVulnerabilities(ctx, owner, repo, provider.AlertListOptions{
		State:       state,
		Severity:    severity,
		ListOptions: pagination,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list vulnerabilities: %w", err)
	}
	return vulns, fmt.Sprintf("vulnerabilities listed for %s/%s", owner, repo), nil
}

func securityAlerts(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "alert_number")
	if err != nil {
		return nil, "", err
	}
	state, _ := RequiredParam[string](args, "state")

	alert, err := security.ManageAlert(ctx, owner, repo, int64(number), state)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update alert: %w", err)
	}
	return alert, fmt.Sprintf("alert %d set to %s", number, state), nil
}

func securityPolicies(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	policies, err := security.ManagePolicies(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to inspect security policies: %w", err)
	}
	return policies, fmt.Sprintf("security policy status for %s/%s", owner, repo), nil
}

func securityCompliance(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	report, err := security.CheckCompliance(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("compliance check failed: %w", err)
	}
	return report, fmt.Sprintf("compliance report for %s/%s", owner, repo), nil
}

func securityDependencies(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	deps, err := security.AnalyzeDependencies(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("dependency analysis failed: %w", err)
	}
	return deps, fmt.Sprintf("dependency analysis for %s/%s", owner, repo), nil
}

func securityAdvisories(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	security, err := securityCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	advisories, err := security.ListAdvisories(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list advisories: %w", err)
	}
	return advisories, fmt.Sprintf("advisories listed for %s/%s", owner, repo), nil
}
