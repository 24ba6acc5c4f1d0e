package tools

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func TestFilesTool_UpdateResolvesSHA(t *testing.T) {
	var gotSHA string
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		getFile: func(owner, repo, path, ref string) (*provider.FileContent, error) {
			return &provider.FileContent{Path: path, SHA: "resolved-sha"}, nil
		},
		updateFile: func(owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
			gotSHA = opts.SHA
			return map[string]any{"path": path}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := FilesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":  "update",
		"owner":   "acme",
		"repo":    "demo",
		"path":    "README.md",
		"content": "# hello",
		"message": "docs: update readme",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "resolved-sha", gotSHA, "missing sha is resolved with a get first")
}

func TestFilesTool_UpdateKeepsExplicitSHA(t *testing.T) {
	var gotSHA string
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		getFile: func(owner, repo, path, ref string) (*provider.FileContent, error) {
			t.Fatal("GetFile must not be called when sha is provided")
			return nil, nil
		},
		updateFile: func(owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
			gotSHA = opts.SHA
			return map[string]any{"path": path}, nil
		},
	}
	ctx, _ := testDeps(t, p)

	tool := FilesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":  "update",
		"owner":   "acme",
		"repo":    "demo",
		"path":    "README.md",
		"content": "# hello",
		"message": "docs: update readme",
		"sha":     "explicit-sha",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	require.True(t, env.Success)
	assert.Equal(t, "explicit-sha", gotSHA)
}

func TestFilesTool_UpdateFailsWhenSHAUnresolvable(t *testing.T) {
	p := &fakeProvider{
		name:  "github",
		login: "octocat",
		getFile: func(owner, repo, path, ref string) (*provider.FileContent, error) {
			return nil, fmt.Errorf("file not found")
		},
	}
	ctx, _ := testDeps(t, p)

	tool := FilesTool()
	result, err := tool.Handler(ctx, createMCPRequest(t, map[string]any{
		"action":  "update",
		"owner":   "acme",
		"repo":    "demo",
		"path":    "missing.txt",
		"content": "data",
		"message": "add file",
	}))
	require.NoError(t, err)

	env := unmarshalEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "failed to resolve current file SHA")
}
