package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// IssuesTool manages issues on the resolved provider. Actions: create, list,
// get, update, comment, close.
func IssuesTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action":       actionSchema("Issue operation to perform.", "create", "list", "get", "update", "comment", "close"),
		"provider":     providerSchema(),
		"owner":        ownerSchema(),
		"repo":         repoSchema(),
		"issue_number": intSchema("Issue number. Required for get, update, comment and close."),
		"title":        stringSchema("Issue title. Required for create."),
		"body":         stringSchema("Issue body, or the comment body for the comment action."),
		"state":        stringSchema("Issue state filter for list (open, closed, all) or the new state for update."),
		"labels":       stringArraySchema("Label names to set on the issue, or to filter by when listing."),
		"assignees":    stringArraySchema("Logins to assign to the issue."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_issues",
			Description: "Manage repository issues: create, list, get, update, comment and close.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetIssues,
		map[string]Action{
			"create": {
				Requires: []string{"owner", "repo", "title"},
				Handler:  issuesCreate,
			},
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  issuesList,
			},
			"get": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "issue_number"},
				Handler:  issuesGet,
			},
			"update": {
				Requires: []string{"owner", "repo", "issue_number"},
				Handler:  issuesUpdate,
			},
			"comment": {
				Requires: []string{"owner", "repo", "issue_number", "body"},
				Handler:  issuesComment,
			},
			"close": {
				Requires: []string{"owner", "repo", "issue_number"},
				Handler:  issuesClose,
			},
		},
		WithAutoDetectOwner(),
	)
}

func issuesCapability(p provider.Provider) (provider.Issues, error) {
	issues, ok := p.(provider.Issues)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "issues")
	}
	return issues, nil
}

func issuesCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	title, _ := RequiredParam[string](args, "title")
	body, err := OptionalParam[string](args, "body")
	if err != nil {
		return nil, "", err
	}
	labels, err := OptionalStringArrayParam(args, "labels")
	if err != nil {
		return nil, "", err
	}
	assignees, err := OptionalStringArrayParam(args, "assignees")
	if err != nil {
		return nil, "", err
	}

	issue, err := issues.CreateIssue(ctx, owner, repo, provider.IssueOptions{
		Title:     title,
		Body:      body,
		Labels:    labels,
		Assignees: assignees,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create issue: %w", err)
	}
	return issue, fmt.Sprintf("issue created in %s/%s", owner, repo), nil
}

func issuesList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	state, err := OptionalParam[string](args, "state")
	if err != nil {
		return nil, "", err
	}
	labels, err := OptionalStringArrayParam(args, "labels")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := issues.ListIssues(ctx, owner, repo, provider.IssueListOptions{
		State:       state,
		Labels:      labels,
		ListOptions: pagination,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list issues: %w", err)
	}
	return list, fmt.Sprintf("issues listed for %s/%s", owner, repo), nil
}

func issuesGet(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "issue_number")
	if err != nil {
		return nil, "", err
	}

	issue, err := issues.GetIssue(ctx, owner, repo, int64(number))
	if err != nil {
		return nil, "", fmt.Errorf("failed to get issue: %w", err)
	}
	return issue, fmt.Sprintf("issue #%d retrieved", number), nil
}

func issuesUpdate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "issue_number")
	if err != nil {
		return nil, "", err
	}
	title, err := OptionalParam[string](args, "title")
	if err != nil {
		return nil, "", err
	}
	body, err := OptionalParam[string](args, "body")
	if err != nil {
		return nil, "", err
	}
	state, err := OptionalParam[string](args, "state")
	if err != nil {
		return nil, "", err
	}
	labels, err := OptionalStringArrayParam(args, "labels")
	if err != nil {
		return nil, "", err
	}
	assignees, err := OptionalStringArrayParam(args, "assignees")
	if err != nil {
		return nil, "", err
	}

	issue, err := issues.UpdateIssue(ctx, owner, repo, int64(number), provider.IssueOptions{
		Title:     title,
		Body:      body,
		State:     state,
		Labels:    labels,
		Assignees: assignees,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to update issue: %w", err)
	}
	return issue, fmt.Sprintf("issue #%d updated", number), nil
}

func issuesComment(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "issue_number")
	if err != nil {
		return nil, "", err
	}
	body, _ := RequiredParam[string](args, "body")

	comment, err := issues.CommentIssue(ctx, owner, repo, int64(number), body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to comment on issue: %w", err)
	}
	return comment, fmt.Sprintf("comment added to issue #%d", number), nil
}

func issuesClose(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	issues, err := issuesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "issue_number")
	if err != nil {
		return nil, "", err
	}

	issue, err := issues.UpdateIssue(ctx, owner, repo, int64(number), provider.IssueOptions{State: "closed"})
	if err != nil {
		return nil, "", fmt.Errorf("failed to close issue: %w", err)
	}
	return issue, fmt.Sprintf("issue #%d closed", number), nil
}
