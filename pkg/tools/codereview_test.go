package tools

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func TestCodeReviewTool_GuardRejectsProvidersWithoutReviews(t *testing.T) {
	ctx, _ := testDeps(t, &bareProvider{name: "gitea", login: "tester"})

	tool := CodeReviewTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "list-reviews",
		"owner":       "acme",
		"repo":        "demo",
		"pull_number": 1,
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success, "guard fails hard even for read-only actions")
	assert.Equal(t, "GITEA: code review operations are not supported by this provider", env.Error)
}

func TestCodeReviewTool_ApplySuggestionsReportsPartialFailure(t *testing.T) {
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		applySuggestion: func(s provider.Suggestion) (any, error) {
			if s.Path == "bad.go" {
				return nil, fmt.Errorf("merge conflict")
			}
			return map[string]any{"path": s.Path}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := CodeReviewTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "apply-suggestions",
		"owner":       "acme",
		"repo":        "demo",
		"pull_number": 5,
		"suggestions": []any{
			map[string]any{"path": "good.go", "start_line": 1, "end_line": 2, "content": "fixed"},
			map[string]any{"path": "bad.go", "start_line": 3, "end_line": 3, "content": "fixed"},
		},
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success, "per-item failures do not fail the action")
	assert.Equal(t, "1 of 2 suggestions applied to pull request #5", env.Message)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["applied"], 1)
	assert.Len(t, data["failed"], 1)
	assert.Equal(t, float64(2), data["total"])
}

func TestCodeReviewTool_ApplySuggestionsAllSucceedMarshalsEmptyFailed(t *testing.T) {
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		applySuggestion: func(s provider.Suggestion) (any, error) {
			return map[string]any{"path": s.Path}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := CodeReviewTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "apply-suggestions",
		"owner":       "acme",
		"repo":        "demo",
		"pull_number": 5,
		"suggestions": []any{
			map[string]any{"path": "good.go", "start_line": 1, "end_line": 2, "content": "fixed"},
		},
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "1 of 1 suggestions applied to pull request #5", env.Message)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["applied"], 1)

	// failed must be an empty array, not null, so applied plus failed
	// always accounts for every suggestion.
	failed, ok := data["failed"].([]any)
	require.True(t, ok, "failed is an array even when empty, got %T", data["failed"])
	assert.Empty(t, failed)
}

func TestCodeReviewTool_CreateReviewDefaultsToComment(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := CodeReviewTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "create-review",
		"owner":       "acme",
		"repo":        "demo",
		"pull_number": 5,
		"body":        "looks good",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "COMMENT", data["event"])
}
