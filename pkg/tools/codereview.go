package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// CodeReviewTool manages pull request reviews. Actions: list-reviews,
// create-review, review-comments, apply-suggestions, request-reviewers.
//
// The whole tool is rejected up front for providers without the Reviews
// capability: reviews are write-heavy and partial support would be more
// confusing than an explicit failure.
func CodeReviewTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Code review operation to perform.",
			"list-reviews", "create-review", "review-comments", "apply-suggestions", "request-reviewers"),
		"provider":    providerSchema(),
		"owner":       ownerSchema(),
		"repo":        repoSchema(),
		"pull_number": intSchema("Pull request number."),
		"body":        stringSchema("Review body for create-review."),
		"event":       stringSchema("Review event for create-review: APPROVE, REQUEST_CHANGES or COMMENT. Defaults to COMMENT."),
		"comments": {
			Type:        "array",
			Description: "Inline comments for create-review. Each item has path, line and body.",
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"path": stringSchema("File path the comment applies to."),
					"line": intSchema("Line in the diff the comment applies to."),
					"body": stringSchema("Comment text."),
				},
				Required: []string{"path", "line", "body"},
			},
		},
		"suggestions": {
			Type:        "array",
			Description: "Code suggestions to apply as commits for apply-suggestions. Each item has path, start_line, end_line, content and optionally branch and message.",
			Items: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"path":       stringSchema("File path the suggestion replaces lines in."),
					"start_line": intSchema("First line to replace (1-based)."),
					"end_line":   intSchema("Last line to replace, inclusive."),
					"content":    stringSchema("Replacement content."),
					"branch":     stringSchema("Branch to commit to. Defaults to the pull request branch."),
					"message":    stringSchema("Commit message. Defaults to a generated message."),
				},
				Required: []string{"path", "start_line", "end_line", "content"},
			},
		},
		"reviewers": stringArraySchema("Logins to request reviews from for request-reviewers."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_code_review",
			Description: "Pull request reviews: list reviews and review comments, create reviews, apply code suggestions and request reviewers.",
			InputSchema: objectSchema(props, "repo", "pull_number"),
		},
		ToolsetCodeReview,
		map[string]Action{
			"list-reviews": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "pull_number"},
				Handler:  reviewsList,
			},
			"create-review": {
				Requires: []string{"owner", "repo", "pull_number"},
				Handler:  reviewsCreate,
			},
			"review-comments": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "pull_number"},
				Handler:  reviewsComments,
			},
			"apply-suggestions": {
				Requires: []string{"owner", "repo", "pull_number", "suggestions"},
				Handler:  reviewsApplySuggestions,
			},
			"request-reviewers": {
				Requires: []string{"owner", "repo", "pull_number", "reviewers"},
				Handler:  reviewsRequestReviewers,
			},
		},
		WithAutoDetectOwner(),
		WithGuard(func(p provider.Provider, _ string) error {
			if _, ok := p.(provider.Reviews); !ok {
				return fmt.Errorf("%s: code review operations are not supported by this provider", strings.ToUpper(p.Name()))
			}
			return nil
		}),
	)
}

func reviewsCapability(p provider.Provider) (provider.Reviews, error) {
	reviews, ok := p.(provider.Reviews)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "code review")
	}
	return reviews, nil
}

func reviewsList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	reviews, err := reviewsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "pull_number")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := reviews.ListReviews(ctx, owner, repo, int64(number), pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list reviews: %w", err)
	}
	return list, fmt.Sprintf("reviews listed for pull request #%d", number), nil
}

func reviewsCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	reviews, err := reviewsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "pull_number")
	if err != nil {
		return nil, "", err
	}
	body, err := OptionalParam[string](args, "body")
	if err != nil {
		return nil, "", err
	}
	event, err := OptionalParam[string](args, "event")
	if err != nil {
		return nil, "", err
	}
	if event == "" {
		event = "COMMENT"
	}

	comments, err := reviewCommentsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	review, err := reviews.CreateReview(ctx, owner, repo, int64(number), provider.ReviewOptions{
		Body:     body,
		Event:    event,
		Comments: comments,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create review: %w", err)
	}
	return review, fmt.Sprintf("review created on pull request #%d", number), nil
}

func reviewCommentsFromArgs(args map[string]any) ([]provider.ReviewComment, error) {
	raw, err := OptionalParam[[]any](args, "comments")
	if err != nil {
		return nil, err
	}
	comments := make([]provider.ReviewComment, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("comments[%d] is not an object", i)
		}
		path, _ := m["path"].(string)
		body, _ := m["body"].(string)
		line, _ := m["line"].(float64)
		if path == "" || body == "" {
			return nil, fmt.Errorf("comments[%d] must have path and body", i)
		}
		comments = append(comments, provider.ReviewComment{
			Path: path,
			Line: int(line),
			Body: body,
		})
	}
	return comments, nil
}

func reviewsComments(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	reviews, err := reviewsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "pull_number")
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	comments, err := reviews.ListReviewComments(ctx, owner, repo, int64(number), pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list review comments: %w", err)
	}
	return comments, fmt.Sprintf("review comments listed for pull request #%d", number), nil
}

// reviewsApplySuggestions applies each suggestion independently and reports
// per-item outcomes. The action itself succeeds as long as the input was
// valid; callers inspect applied and failed in the payload.
func reviewsApplySuggestions(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	reviews, err := reviewsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "pull_number")
	if err != nil {
		return nil, "", err
	}
	raw, err := OptionalParam[[]any](args, "suggestions")
	if err != nil {
		return nil, "", err
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("suggestions must not be empty")
	}

	type failure struct {
		Index int    `json:"index"`
		Path  string `json:"path"`
		Error string `json:"error"`
	}
	// Initialized so that empty lists marshal as [] rather than null.
	applied := []any{}
	failed := []failure{}

	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("suggestions[%d] is not an object", i)
		}
		path, _ := m["path"].(string)
		content, _ := m["content"].(string)
		startLine, _ := m["start_line"].(float64)
		endLine, _ := m["end_line"].(float64)
		branch, _ := m["branch"].(string)
		message, _ := m["message"].(string)
		if path == "" || content == "" {
			return nil, "", fmt.Errorf("suggestions[%d] must have path and content", i)
		}
		if message == "" {
			message = fmt.Sprintf("apply review suggestion to %s", path)
		}

		result, err := reviews.ApplySuggestion(ctx, owner, repo, provider.Suggestion{
			Path:      path,
			StartLine: int(startLine),
			EndLine:   int(endLine),
			Content:   content,
			Branch:    branch,
			Message:   message,
		})
		if err != nil {
			failed = append(failed, failure{Index: i, Path: path, Error: err.Error()})
			continue
		}
		applied = append(applied, result)
	}

	data := map[string]any{
		"applied": applied,
		"failed":  failed,
		"total":   len(raw),
	}
	return data, fmt.Sprintf("%d of %d suggestions applied to pull request #%d", len(applied), len(raw), number), nil
}

func reviewsRequestReviewers(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	reviews, err := reviewsCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	number, err := RequiredInt(args, "pull_number")
	if err != nil {
		return nil, "", err
	}
	reviewers, err := OptionalStringArrayParam(args, "reviewers")
	if err != nil {
		return nil, "", err
	}
	if len(reviewers) == 0 {
		return nil, "", fmt.Errorf("reviewers must not be empty")
	}

	result, err := reviews.RequestReviewers(ctx, owner, repo, int64(number), reviewers)
	if err != nil {
		return nil, "", fmt.Errorf("failed to request reviewers: %w", err)
	}
	return result, fmt.Sprintf("reviewers requested on pull request #%d", number), nil
}
