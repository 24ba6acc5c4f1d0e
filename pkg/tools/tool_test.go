package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func TestActionTool_UnsupportedAction(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "destroy",
		"repo":   "demo",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "destroy", env.Action)
	assert.Equal(t, "unsupported action: destroy", env.Error)
	assert.True(t, result.IsError)
}

func TestActionTool_InvalidArgumentsReturnEnvelope(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "list",
		"repo":   "demo",
		"page":   "one",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "list", env.Action)
	assert.Contains(t, env.Error, "invalid arguments")
}

func TestActionTool_MissingAction(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"repo": "demo",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "missing required parameter: action", env.Error)
}

func TestActionTool_MissingRequiredParams(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "create",
		"repo":   "demo",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "create", env.Action)
	assert.Equal(t, `required parameters not provided for action "create": title`, env.Error)
}

func TestActionTool_ProviderNotFound(t *testing.T) {
	ctx, _ := testDeps(t, &fakeProvider{name: "github", login: "octocat"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":   "list",
		"repo":     "demo",
		"provider": "bitbucket",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "provider not found: bitbucket", env.Error)
}

func TestActionTool_OwnerAutoDetection(t *testing.T) {
	var gotOwner string
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		listIssues: func(owner, repo string, _ provider.IssueListOptions) (any, error) {
			gotOwner = owner
			return []any{}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "list",
		"repo":   "demo",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.True(t, env.Success)
	assert.Equal(t, "octocat", gotOwner)
}

func TestActionTool_ReadOnlyDegradesWhenNotSupported(t *testing.T) {
	ctx, _ := testDeps(t, &bareProvider{name: "gitea", login: "tester"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "list",
		"repo":   "demo",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.True(t, env.Success, "read-only actions degrade gracefully")
	assert.Equal(t, "issues is not supported by provider gitea", env.Message)
	assert.False(t, result.IsError)
}

func TestActionTool_MutatingFailsWhenNotSupported(t *testing.T) {
	ctx, _ := testDeps(t, &bareProvider{name: "gitea", login: "tester"})

	tool := IssuesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action": "create",
		"repo":   "demo",
		"title":  "broken build",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Equal(t, "issues is not supported by provider gitea", env.Error)
	assert.True(t, result.IsError)
}

func TestActionTool_ReadOnlyAnnotations(t *testing.T) {
	analytics := AnalyticsTool()
	assert.True(t, analytics.IsReadOnly(), "all analytics actions are read-only")

	issues := IssuesTool()
	assert.False(t, issues.IsReadOnly(), "issues has mutating actions")
}
