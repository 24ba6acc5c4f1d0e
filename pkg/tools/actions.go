package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// ActionsTool inspects and controls CI runs. Actions: list-runs, cancel,
// rerun, artifacts, secrets, jobs, download-artifact.
func ActionsTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("CI operation to perform.",
			"list-runs", "cancel", "rerun", "artifacts", "secrets", "jobs", "download-artifact"),
		"provider":    providerSchema(),
		"owner":       ownerSchema(),
		"repo":        repoSchema(),
		"run_id":      intSchema("Workflow run ID. Required for cancel, rerun, artifacts and jobs."),
		"artifact_id": intSchema("Artifact ID. Required for download-artifact."),
		"workflow_id": stringSchema("Workflow file name or ID to filter run listings."),
		"branch":      stringSchema("Branch to filter run listings."),
		"event":       stringSchema("Triggering event to filter run listings, e.g. push."),
		"status":      stringSchema("Run status to filter listings, e.g. completed, in_progress."),
		"actor":       stringSchema("Login of the user that triggered the runs."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_actions",
			Description: "Inspect and control CI workflow runs: list runs, cancel, rerun, list artifacts, secrets and jobs, and resolve artifact downloads.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetActions,
		map[string]Action{
			"list-runs": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  actionsListRuns,
			},
			"cancel": {
				Requires: []string{"owner", "repo", "run_id"},
				Handler:  actionsCancel,
			},
			"rerun": {
				Requires: []string{"owner", "repo", "run_id"},
				Handler:  actionsRerun,
			},
			"artifacts": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "run_id"},
				Handler:  actionsArtifacts,
			},
			"secrets": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  actionsSecrets,
			},
			"jobs": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "run_id"},
				Handler:  actionsJobs,
			},
			"download-artifact": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "artifact_id"},
				Handler:  actionsDownloadArtifact,
			},
		},
		WithAutoDetectOwner(),
	)
}

func runsCapability(p provider.Provider) (provider.WorkflowRuns, error) {
	runs, ok := p.(provider.WorkflowRuns)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "workflow runs")
	}
	return runs, nil
}

func actionsListRuns(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	workflowID, err := OptionalParam[string](args, "workflow_id")
	if err != nil {
		return nil, "", err
	}
	branch, err := OptionalParam[string](args, "branch")
	if err != nil {
		return nil, "", err
	}
	event, err := OptionalParam[string](args, "event")
	if err != nil {
		return nil, "", err
	}
	status, err := OptionalParam[string](args, "status")
	if err != nil {
		return nil, "", err
	}
	actor, err := OptionalParam[string](args, "actor")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := runs.ListWorkflowRuns(ctx, owner, repo, provider.RunListOptions{
		WorkflowID:  workflowID,
		Branch:      branch,
		Event:       event,
		Status:      status,
		Actor:       actor,
		ListOptions: pagination,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list workflow runs: %w", err)
	}
	return list, fmt.Sprintf("workflow runs listed for %s/%s", owner, repo), nil
}

func actionsCancel(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	runID, err := RequiredInt(args, "run_id")
	if err != nil {
		return nil, "", err
	}

	if err := runs.CancelWorkflowRun(ctx, owner, repo, int64(runID)); err != nil {
		return nil, "", fmt.Errorf("failed to cancel workflow run: %w", err)
	}
	return nil, fmt.Sprintf("workflow run %d cancelled", runID), nil
}

func actionsRerun(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	runID, err := RequiredInt(args, "run_id")
	if err != nil {
		return nil, "", err
	}

	if err := runs.RerunWorkflow(ctx, owner, repo, int64(runID)); err != nil {
		return nil, "", fmt.Errorf("failed to rerun workflow: %w", err)
	}
	return nil, fmt.Sprintf("workflow run %d requeued", runID), nil
}

func actionsArtifacts(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	runID, err := RequiredInt(args, "run_id")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	artifacts, err := runs.ListArtifacts(ctx, owner, repo, int64(runID), pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list artifacts: %w", err)
	}
	return artifacts, fmt.Sprintf("artifacts listed for run %d", runID), nil
}

func actionsSecrets(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	secrets, err := runs.ListSecrets(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list secrets: %w", err)
	}
	return secrets, fmt.Sprintf("secret names listed for %s/%s", owner, repo), nil
}

func actionsJobs(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	runID, err := RequiredInt(args, "run_id")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	jobs, err := runs.ListJobs(ctx, owner, repo, int64(runID), pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, fmt.Sprintf("jobs listed for run %d", runID), nil
}

func actionsDownloadArtifact(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	runs, err := runsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	artifactID, err := RequiredInt(args, "artifact_id")
	if err != nil {
		return nil, "", err
	}

	url, err := runs.DownloadArtifact(ctx, owner, repo, int64(artifactID))
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve artifact download: %w", err)
	}
	return map[string]any{"download_url": url}, fmt.Sprintf("download URL resolved for artifact %d", artifactID), nil
}
