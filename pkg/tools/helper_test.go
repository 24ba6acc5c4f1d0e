package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/envelope"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// fakeProvider implements the base Provider contract plus the capabilities
// exercised by the tests. Behavior is stubbed through function fields; nil
// fields return canned values.
type fakeProvider struct {
	name  string
	login string

	createIssue func(owner, repo string, opts provider.IssueOptions) (any, error)
	listIssues  func(owner, repo string, opts provider.IssueListOptions) (any, error)
	updateIssue func(owner, repo string, number int64, opts provider.IssueOptions) (any, error)

	getFile    func(owner, repo, path, ref string) (*provider.FileContent, error)
	updateFile func(owner, repo, path string, opts provider.FileWriteOptions) (any, error)

	applySuggestion func(s provider.Suggestion) (any, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) CurrentUser(context.Context) (string, error) {
	if f.login == "" {
		return "", fmt.Errorf("no login configured")
	}
	return f.login, nil
}

// Issues capability.

func (f *fakeProvider) CreateIssue(_ context.Context, owner, repo string, opts provider.IssueOptions) (any, error) {
	if f.createIssue != nil {
		return f.createIssue(owner, repo, opts)
	}
	return map[string]any{"number": 1, "title": opts.Title}, nil
}

func (f *fakeProvider) ListIssues(_ context.Context, owner, repo string, opts provider.IssueListOptions) (any, error) {
	if f.listIssues != nil {
		return f.listIssues(owner, repo, opts)
	}
	return []any{}, nil
}

func (f *fakeProvider) GetIssue(_ context.Context, owner, repo string, number int64) (any, error) {
	return map[string]any{"number": number}, nil
}

func (f *fakeProvider) UpdateIssue(_ context.Context, owner, repo string, number int64, opts provider.IssueOptions) (any, error) {
	if f.updateIssue != nil {
		return f.updateIssue(owner, repo, number, opts)
	}
	return map[string]any{"number": number, "state": opts.State}, nil
}

func (f *fakeProvider) CommentIssue(_ context.Context, owner, repo string, number int64, body string) (any, error) {
	return map[string]any{"issue": number, "body": body}, nil
}

// Files capability.

func (f *fakeProvider) GetFile(_ context.Context, owner, repo, path, ref string) (*provider.FileContent, error) {
	if f.getFile != nil {
		return f.getFile(owner, repo, path, ref)
	}
	return &provider.FileContent{Path: path, SHA: "abc123"}, nil
}

func (f *fakeProvider) CreateFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	return map[string]any{"path": path}, nil
}

func (f *fakeProvider) UpdateFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	if f.updateFile != nil {
		return f.updateFile(owner, repo, path, opts)
	}
	return map[string]any{"path": path, "sha": opts.SHA}, nil
}

func (f *fakeProvider) DeleteFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	return map[string]any{"path": path, "deleted": true}, nil
}

func (f *fakeProvider) ListFiles(_ context.Context, owner, repo, dir, ref string) (any, error) {
	return []any{}, nil
}

// Reviews capability.

func (f *fakeProvider) ListReviews(_ context.Context, owner, repo string, number int64, opts provider.ListOptions) (any, error) {
	return []any{}, nil
}

func (f *fakeProvider) CreateReview(_ context.Context, owner, repo string, number int64, opts provider.ReviewOptions) (any, error) {
	return map[string]any{"event": opts.Event}, nil
}

func (f *fakeProvider) ListReviewComments(_ context.Context, owner, repo string, number int64, opts provider.ListOptions) (any, error) {
	return []any{}, nil
}

func (f *fakeProvider) ApplySuggestion(_ context.Context, owner, repo string, s provider.Suggestion) (any, error) {
	if f.applySuggestion != nil {
		return f.applySuggestion(s)
	}
	return map[string]any{"path": s.Path}, nil
}

func (f *fakeProvider) RequestReviewers(_ context.Context, owner, repo string, number int64, reviewers []string) (any, error) {
	return map[string]any{"reviewers": reviewers}, nil
}

// bareProvider implements only the base Provider contract. Used to exercise
// capability probing.
type bareProvider struct {
	name  string
	login string
}

func (b *bareProvider) Name() string { return b.name }

func (b *bareProvider) CurrentUser(context.Context) (string, error) {
	if b.login == "" {
		return "", fmt.Errorf("no login configured")
	}
	return b.login, nil
}

// fakeGit records git invocations and returns canned output per subcommand.
type fakeGit struct {
	calls  [][]string
	output map[string]string
	err    error
}

func (g *fakeGit) Run(_ context.Context, dir string, args ...string) (string, error) {
	g.calls = append(g.calls, append([]string{dir}, args...))
	if g.err != nil {
		return "", g.err
	}
	if g.output != nil && len(args) > 1 {
		if out, ok := g.output[args[1]]; ok {
			return out, nil
		}
	}
	return "", nil
}

func testDeps(t *testing.T, providers ...provider.Provider) (context.Context, *BaseDeps) {
	t.Helper()
	registry, err := provider.NewRegistry("", providers...)
	require.NoError(t, err)
	deps := NewBaseDeps(registry, provider.NewIdentityCache(), &fakeGit{}, slog.Default())
	return ContextWithDeps(context.Background(), deps), deps
}

func createMCPRequest(t *testing.T, args map[string]any) *mcp.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: raw},
	}
}

func getTextResult(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func unmarshalEnvelope(t *testing.T, result *mcp.CallToolResult) envelope.Envelope {
	t.Helper()
	var env envelope.Envelope
	require.NoError(t, json.Unmarshal([]byte(getTextResult(t, result)), &env))
	return env
}
