package tools

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func gitDeps(t *testing.T, git *fakeGit) context.Context {
	t.Helper()
	registry, err := provider.NewRegistry("", &bareProvider{name: "github", login: "octocat"})
	require.NoError(t, err)
	deps := NewBaseDeps(registry, provider.NewIdentityCache(), git, slog.Default())
	return ContextWithDeps(context.Background(), deps)
}

func TestGitBundleTool_ListHeads(t *testing.T) {
	git := &fakeGit{output: map[string]string{
		"list-heads": "4f2a... refs/heads/main\nabc123def456 refs/heads/main\nfed654cba321 refs/tags/v1.0.0\n",
	}}
	ctx := gitDeps(t, git)

	tool := GitBundleTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "list-heads",
		"bundle_path": "/tmp/repo.bundle",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	heads, ok := data["heads"].([]any)
	require.True(t, ok)
	assert.Len(t, heads, 3)
	first := heads[1].(map[string]any)
	assert.Equal(t, "abc123def456", first["sha"])
	assert.Equal(t, "refs/heads/main", first["ref"])
}

func TestGitBundleTool_CreateDefaultsToAllRefs(t *testing.T) {
	git := &fakeGit{}
	ctx := gitDeps(t, git)

	tool := GitBundleTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "create",
		"repository":  t.TempDir(),
		"bundle_path": "/tmp/repo.bundle",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	require.Len(t, git.calls, 1)
	assert.Equal(t, []string{"bundle", "create", "/tmp/repo.bundle", "--all"}, git.calls[0][1:])
}

func TestGitBundleTool_VerifyFailure(t *testing.T) {
	git := &fakeGit{err: fmt.Errorf("git bundle verify failed: exit status 1: bad bundle")}
	ctx := gitDeps(t, git)

	tool := GitBundleTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "verify",
		"bundle_path": "/tmp/broken.bundle",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "bad bundle")
}

func TestGitBundleTool_CreateRequiresExistingRepository(t *testing.T) {
	ctx := gitDeps(t, &fakeGit{})

	tool := GitBundleTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":      "create",
		"repository":  "/does/not/exist",
		"bundle_path": "/tmp/repo.bundle",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "working directory")
}
