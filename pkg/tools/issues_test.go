package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func TestIssuesTool_Create(t *testing.T) {
	var gotOpts provider.IssueOptions
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		createIssue: func(owner, repo string, opts provider.IssueOptions) (any, error) {
			gotOpts = opts
			return map[string]any{"number": 42, "title": opts.Title}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":    "create",
		"owner":     "acme",
		"repo":      "demo",
		"title":     "broken build",
		"body":      "the build is red",
		"labels":    []string{"bug"},
		"assignees": []string{"octocat"},
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "create", env.Action)
	assert.Equal(t, "issue created in acme/demo", env.Message)
	assert.Equal(t, "broken build", gotOpts.Title)
	assert.Equal(t, []string{"bug"}, gotOpts.Labels)
	assert.Equal(t, []string{"octocat"}, gotOpts.Assignees)
}

func TestIssuesTool_ListPassesFilters(t *testing.T) {
	var gotOpts provider.IssueListOptions
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		listIssues: func(owner, repo string, opts provider.IssueListOptions) (any, error) {
			gotOpts = opts
			return []any{map[string]any{"number": 1}}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":   "list",
		"owner":    "acme",
		"repo":     "demo",
		"state":    "open",
		"labels":   []string{"bug"},
		"page":     2,
		"per_page": 50,
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "open", gotOpts.State)
	assert.Equal(t, []string{"bug"}, gotOpts.Labels)
	assert.Equal(t, 2, gotOpts.Page)
	assert.Equal(t, 50, gotOpts.PerPage)
}

func TestIssuesTool_CloseSetsClosedState(t *testing.T) {
	var gotState string
	var gotNumber int64
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		updateIssue: func(owner, repo string, number int64, opts provider.IssueOptions) (any, error) {
			gotState = opts.State
			gotNumber = number
			return map[string]any{"number": number, "state": opts.State}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":       "close",
		"owner":        "acme",
		"repo":         "demo",
		"issue_number": 7,
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "issue #7 closed", env.Message)
	assert.Equal(t, "closed", gotState)
	assert.Equal(t, int64(7), gotNumber)
}

func TestIssuesTool_CommentRequiresBody(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":       "comment",
		"owner":        "acme",
		"repo":         "demo",
		"issue_number": 7,
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, `required parameters not provided for action "comment": body`, env.Error)
}
