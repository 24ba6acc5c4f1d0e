package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// WebhooksTool manages repository webhooks. Actions: create, list, get,
// update, delete, ping.
func WebhooksTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action":       actionSchema("Webhook operation to perform.", "create", "list", "get", "update", "delete", "ping"),
		"provider":     providerSchema(),
		"owner":        ownerSchema(),
		"repo":         repoSchema(),
		"hook_id":      intSchema("Webhook ID. Required for get, update, delete and ping."),
		"url":          stringSchema("Payload delivery URL. Required for create."),
		"content_type": stringSchema("Payload content type, json or form. Defaults to json."),
		"secret":       stringSchema("Shared secret used to sign deliveries."),
		"events":       stringArraySchema("Events that trigger the webhook, e.g. push, issues. Defaults to push."),
		"active":       boolSchema("Whether the webhook is active."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_webhooks",
			Description: "Manage repository webhooks: create, list, get, update, delete and ping.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetWebhooks,
		map[string]Action{
			"create": {
				Requires: []string{"owner", "repo", "url"},
				Handler:  webhooksCreate,
			},
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  webhooksList,
			},
			"get": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "hook_id"},
				Handler:  webhooksGet,
			},
			"update": {
				Requires: []string{"owner", "repo", "hook_id"},
				Handler:  webhooksUpdate,
			},
			"delete": {
				Requires: []string{"owner", "repo", "hook_id"},
				Handler:  webhooksDelete,
			},
			"ping": {
				Requires: []string{"owner", "repo", "hook_id"},
				Handler:  webhooksPing,
			},
		},
		WithAutoDetectOwner(),
	)
}

func webhooksCapability(p provider.Provider) (provider.Webhooks, error) {
	hooks, ok := p.(provider.Webhooks)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "webhooks")
	}
	return hooks, nil
}

func webhookOptionsFromArgs(args map[string]any) (provider.WebhookOptions, error) {
	url, err := OptionalParam[string](args, "url")
	if err != nil {
		return provider.WebhookOptions{}, err
	}
	contentType, err := OptionalParam[string](args, "content_type")
	if err != nil {
		return provider.WebhookOptions{}, err
	}
	secret, err := OptionalParam[string](args, "secret")
	if err != nil {
		return provider.WebhookOptions{}, err
	}
	events, err := OptionalStringArrayParam(args, "events")
	if err != nil {
		return provider.WebhookOptions{}, err
	}
	active, err := OptionalBoolPtr(args, "active")
	if err != nil {
		return provider.WebhookOptions{}, err
	}
	if contentType == "" {
		contentType = "json"
	}
	if len(events) == 0 {
		events = []string{"push"}
	}
	return provider.WebhookOptions{
		URL:         url,
		ContentType: contentType,
		Secret:      secret,
		Events:      events,
		Active:      active,
	}, nil
}

func webhooksCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	opts, err := webhookOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	hook, err := hooks.CreateWebhook(ctx, owner, repo, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create webhook: %w", err)
	}
	return hook, fmt.Sprintf("webhook created for %s/%s", owner, repo), nil
}

func webhooksList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := hooks.ListWebhooks(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list webhooks: %w", err)
	}
	return list, fmt.Sprintf("webhooks listed for %s/%s", owner, repo), nil
}

func webhooksGet(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "hook_id")
	if err != nil {
		return nil, "", err
	}

	hook, err := hooks.GetWebhook(ctx, owner, repo, int64(id))
	if err != nil {
		return nil, "", fmt.Errorf("failed to get webhook: %w", err)
	}
	return hook, fmt.Sprintf("webhook %d retrieved", id), nil
}

func webhooksUpdate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "hook_id")
	if err != nil {
		return nil, "", err
	}
	opts, err := webhookOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	hook, err := hooks.UpdateWebhook(ctx, owner, repo, int64(id), opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update webhook: %w", err)
	}
	return hook, fmt.Sprintf("webhook %d updated", id), nil
}

func webhooksDelete(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "hook_id")
	if err != nil {
		return nil, "", err
	}

	if err := hooks.DeleteWebhook(ctx, owner, repo, int64(id)); err != nil {
		return nil, "", fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil, fmt.Sprintf("webhook %d deleted", id), nil
}

func webhooksPing(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	hooks, err := webhooksCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "hook_id")
	if err != nil {
		return nil, "", err
	}

	if err := hooks.PingWebhook(ctx, owner, repo, int64(id)); err != nil {
		return nil, "", fmt.Errorf("failed to ping webhook: %w", err)
	}
	return nil, fmt.Sprintf("ping delivered to webhook %d", id), nil
}
