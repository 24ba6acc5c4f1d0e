package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// WorkflowsTool manages workflow definitions. Actions: list, create, trigger,
// status, logs, disable, enable.
func WorkflowsTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Workflow operation to perform.",
			"list", "create", "trigger", "status", "logs", "disable", "enable"),
		"provider":    providerSchema(),
		"owner":       ownerSchema(),
		"repo":        repoSchema(),
		"workflow_id": stringSchema("Workflow file name (e.g. ci.yml) or numeric ID. Required for trigger, status, disable and enable."),
		"file_name":   stringSchema("Workflow file name for create, relative to .github/workflows."),
		"content":     stringSchema("Workflow YAML content for create."),
		"message":     stringSchema("Commit message for create. Defaults to a generated message."),
		"ref":         stringSchema("Git ref the triggered run executes on. Required for trigger."),
		"inputs": {
			Type:        "object",
			Description: "Dispatch inputs passed to the triggered workflow.",
		},
		"run_id": intSchema("Workflow run ID. Required for logs."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_workflows",
			Description: "Manage workflow definitions: list, create, trigger runs, check status, fetch logs, disable and enable.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetWorkflows,
		map[string]Action{
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  workflowsList,
			},
			"create": {
				Requires: []string{"owner", "repo", "file_name", "content"},
				Handler:  workflowsCreate,
			},
			"trigger": {
				Requires: []string{"owner", "repo", "workflow_id", "ref"},
				Handler:  workflowsTrigger,
			},
			"status": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "workflow_id"},
				Handler:  workflowsStatus,
			},
			"logs": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "run_id"},
				Handler:  workflowsLogs,
			},
			"disable": {
				Requires: []string{"owner", "repo", "workflow_id"},
				Handler:  workflowsDisable,
			},
			"enable": {
				Requires: []string{"owner", "repo", "workflow_id"},
				Handler:  workflowsEnable,
			},
		},
		WithAutoDetectOwner(),
	)
}

func workflowsCapability(p provider.Provider) (provider.Workflows, error) {
	workflows, ok := p.(provider.Workflows)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "workflows")
	}
	return workflows, nil
}

func workflowsList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := workflows.ListWorkflows(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list workflows: %w", err)
	}
	return list, fmt.Sprintf("workflows listed for %s/%s", owner, repo), nil
}

func workflowsCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	fileName, _ := RequiredParam[string](args, "file_name")
	content, _ := RequiredParam[string](args, "content")
	message, err := OptionalParam[string](args, "message")
	if err != nil {
		return nil, "", err
	}
	if message == "" {
		message = fmt.Sprintf("ci: add workflow %s", fileName)
	}

	result, err := workflows.CreateWorkflow(ctx, owner, repo, fileName, content, message)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create workflow: %w", err)
	}
	return result, fmt.Sprintf("workflow %s created", fileName), nil
}

func workflowsTrigger(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	workflowID, _ := RequiredParam[string](args, "workflow_id")
	ref, _ := RequiredParam[string](args, "ref")
	inputs, err := OptionalParam[map[string]any](args, "inputs")
	if err != nil {
		return nil, "", err
	}

	if err := workflows.TriggerWorkflow(ctx, owner, repo, workflowID, ref, inputs); err != nil {
		return nil, "", fmt.Errorf("failed to trigger workflow: %w", err)
	}
	return nil, fmt.Sprintf("workflow %s dispatched on %s", workflowID, ref), nil
}

func workflowsStatus(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	workflowID, _ := RequiredParam[string](args, "workflow_id")

	status, err := workflows.GetWorkflowStatus(ctx, owner, repo, workflowID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get workflow status: %w", err)
	}
	return status, fmt.Sprintf("status retrieved for workflow %s", workflowID), nil
}

func workflowsLogs(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	runID, err := RequiredInt(args, "run_id")
	if err != nil {
		return nil, "", err
	}

	url, err := workflows.GetWorkflowLogs(ctx, owner, repo, int64(runID))
	if err != nil {
		return nil, "", fmt.Errorf("failed to get workflow logs: %w", err)
	}
	return map[string]any{"logs_url": url}, fmt.Sprintf("logs URL resolved for run %d", runID), nil
}

func workflowsDisable(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	workflowID, _ := RequiredParam[string](args, "workflow_id")

	if err := workflows.DisableWorkflow(ctx, owner, repo, workflowID); err != nil {
		return nil, "", fmt.Errorf("failed to disable workflow: %w", err)
	}
	return nil, fmt.Sprintf("workflow %s disabled", workflowID), nil
}

func workflowsEnable(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	workflows, err := workflowsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	workflowID, _ := RequiredParam[string](args, "workflow_id")

	if err := workflows.EnableWorkflow(ctx, owner, repo, workflowID); err != nil {
		return nil, "", fmt.Errorf("failed to enable workflow: %w", err)
	}
	return nil, fmt.Sprintf("workflow %s enabled", workflowID), nil
}
