package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// DeploymentsTool manages deployments and environments. Actions: list,
// create, status, environments, rollback, delete.
func DeploymentsTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Deployment operation to perform.",
			"list", "create", "status", "environments", "rollback", "delete"),
		"provider":      providerSchema(),
		"owner":         ownerSchema(),
		"repo":          repoSchema(),
		"deployment_id": intSchema("Deployment ID. Required for status, rollback and delete."),
		"ref":           stringSchema("Git ref to deploy. Required for create."),
		"environment":   stringSchema("Target environment, e.g. production. Required for create; filters list."),
		"description":   stringSchema("Deployment or status description."),
		"task":          stringSchema("Deployment task name. Defaults to deploy."),
		"auto_merge":    boolSchema("Merge the default branch into the ref before deploying."),
		"state":         stringSchema("New deployment state for status, e.g. success, failure, in_progress."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_deployments",
			Description: "Manage deployments: list, create, set status, list environments, roll back and delete.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetDeployments,
		map[string]Action{
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  deploymentsList,
			},
			"create": {
				Requires: []string{"owner", "repo", "ref", "environment"},
				Handler:  deploymentsCreate,
			},
			"status": {
				Requires: []string{"owner", "repo", "deployment_id", "state"},
				Handler:  deploymentsStatus,
			},
			"environments": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  deploymentsEnvironments,
			},
			"rollback": {
				Requires: []string{"owner", "repo", "deployment_id"},
				Handler:  deploymentsRollback,
			},
			"delete": {
				Requires: []string{"owner", "repo", "deployment_id"},
				Handler:  deploymentsDelete,
			},
		},
		WithAutoDetectOwner(),
	)
}

func deploymentsCapability(p provider.Provider) (provider.Deployments, error) {
	deployments, ok := p.(provider.Deployments)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "deployments")
	}
	return deployments, nil
}

func deploymentsList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	environment, err := OptionalParam[string](args, "environment")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := deployments.ListDeployments(ctx, owner, repo, environment, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list deployments: %w", err)
	}
	return list, fmt.Sprintf("deployments listed for %s/%s", owner, repo), nil
}

func deploymentsCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	ref, _ := RequiredParam[string](args, "ref")
	environment, _ := RequiredParam[string](args, "environment")
	description, err := OptionalParam[string](args, "description")
	if err != nil {
		return nil, "", err
	}
	task, err := OptionalParam[string](args, "task")
	if err != nil {
		return nil, "", err
	}
	autoMerge, err := OptionalParam[bool](args, "auto_merge")
	if err != nil {
		return nil, "", err
	}
	if task == "" {
		task = "deploy"
	}

	deployment, err := deployments.CreateDeployment(ctx, owner, repo, provider.DeploymentOptions{
		Ref:         ref,
		Environment: environment,
		Description: description,
		Task:        task,
		AutoMerge:   autoMerge,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create deployment: %w", err)
	}
	return deployment, fmt.Sprintf("deployment of %s to %s created", ref, environment), nil
}

func deploymentsStatus(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "deployment_id")
	if err != nil {
		return nil, "", err
	}
	state, _ := RequiredParam[string](args, "state")
	description, err := OptionalParam[string](args, "description")
	if err != nil {
		return nil, "", err
	}

	status, err := deployments.UpdateDeploymentStatus(ctx, owner, repo, int64(id), state, description)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update deployment status: %w", err)
	}
	return status, fmt.Sprintf("deployment %d marked %s", id, state), nil
}

func deploymentsEnvironments(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	environments, err := deployments.ListEnvironments(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list environments: %w", err)
	}
	return environments, fmt.Sprintf("environments listed for %s/%s", owner, repo), nil
}

func deploymentsRollback(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "deployment_id")
	if err != nil {
		return nil, "", err
	}

	deployment, err := deployments.RollbackDeployment(ctx, owner, repo, int64(id))
	if err != nil {
		return nil, "", fmt.Errorf("failed to roll back deployment: %w", err)
	}
	return deployment, fmt.Sprintf("rollback deployment created from deployment %d", id), nil
}

func deploymentsDelete(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	deployments, err := deploymentsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "deployment_id")
	if err != nil {
		return nil, "", err
	}

	if err := deployments.DeleteDeployment(ctx, owner, repo, int64(id)); err != nil {
		return nil, "", fmt.Errorf("failed to delete deployment: %w", err)
	}
	return nil, fmt.Sprintf("deployment %d deleted", id), nil
}
