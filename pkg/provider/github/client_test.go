package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/google/go-github/v79/github"
	"github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

func newTestClient(t *testing.T, opts ...mock.MockBackendOption) *Client {
	t.Helper()
	httpClient := mock.NewMockedHTTPClient(opts...)
	client, err := New("", WithHTTPClient(httpClient))
	require.NoError(t, err)
	return client
}

func TestCurrentUser(t *testing.T) {
	client := newTestClient(t,
		mock.WithRequestMatch(
			mock.GetUser,
			github.User{Login: github.Ptr("octocat")},
		),
	)

	login, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
}

func TestGetFile(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("# demo\n"))
	client := newTestClient(t,
		mock.WithRequestMatch(
			mock.GetReposContentsByOwnerByRepoByPath,
			github.RepositoryContent{
				Type:     github.Ptr("file"),
				Path:     github.Ptr("README.md"),
				SHA:      github.Ptr("abc123"),
				Size:     github.Ptr(7),
				Encoding: github.Ptr("base64"),
				Content:  github.Ptr(content),
			},
		),
	)

	file, err := client.GetFile(context.Background(), "acme", "demo", "README.md", "")
	require.NoError(t, err)
	assert.Equal(t, "README.md", file.Path)
	assert.Equal(t, "abc123", file.SHA)
	assert.Equal(t, "# demo\n", file.Content)
}

func TestCreateIssue(t *testing.T) {
	client := newTestClient(t,
		mock.WithRequestMatch(
			mock.PostReposIssuesByOwnerByRepo,
			github.Issue{
				Number: github.Ptr(42),
				Title:  github.Ptr("broken build"),
			},
		),
	)

	result, err := client.CreateIssue(context.Background(), "acme", "demo", provider.IssueOptions{
		Title:  "broken build",
		Body:   "the build is red",
		Labels: []string{"bug"},
	})
	require.NoError(t, err)

	issue, ok := result.(*github.Issue)
	require.True(t, ok)
	assert.Equal(t, 42, issue.GetNumber())
}

func TestListIssuesPassesFilters(t *testing.T) {
	client := newTestClient(t,
		mock.WithRequestMatch(
			mock.GetReposIssuesByOwnerByRepo,
			[]github.Issue{
				{Number: github.Ptr(1)},
				{Number: github.Ptr(2)},
			},
		),
	)

	result, err := client.ListIssues(context.Background(), "acme", "demo", provider.IssueListOptions{
		State:       "open",
		ListOptions: provider.ListOptions{Page: 1, PerPage: 30},
	})
	require.NoError(t, err)

	issues, ok := result.([]*github.Issue)
	require.True(t, ok)
	assert.Len(t, issues, 2)
}

func TestListWorkflowRunsByFileName(t *testing.T) {
	client := newTestClient(t,
		mock.WithRequestMatch(
			mock.GetReposActionsWorkflowsRunsByOwnerByRepoByWorkflowId,
			github.WorkflowRuns{
				TotalCount: github.Ptr(1),
				WorkflowRuns: []*github.WorkflowRun{
					{ID: github.Ptr(int64(123)), Status: github.Ptr("completed")},
				},
			},
		),
	)

	result, err := client.ListWorkflowRuns(context.Background(), "acme", "demo", provider.RunListOptions{
		WorkflowID: "ci.yml",
	})
	require.NoError(t, err)

	runs, ok := result.(*github.WorkflowRuns)
	require.True(t, ok)
	assert.Equal(t, 1, runs.GetTotalCount())
}

func TestListAdvisoriesForwardsPageSize(t *testing.T) {
	var gotPerPage string
	client := newTestClient(t,
		mock.WithRequestMatchHandler(
			mock.EndpointPattern{
				Pattern: "/repos/{owner}/{repo}/security-advisories",
				Method:  "GET",
			},
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPerPage = r.URL.Query().Get("per_page")
				_, _ = w.Write([]byte("[]"))
			}),
		),
	)

	_, err := client.ListAdvisories(context.Background(), "acme", "demo", provider.ListOptions{PerPage: 50})
	require.NoError(t, err)
	assert.Equal(t, "50", gotPerPage)
}

func TestReplaceLines(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		start, end  int
		replacement string
		want        string
		wantErr     bool
	}{
		{
			name:        "replace middle line",
			content:     "a\nb\nc",
			start:       2,
			end:         2,
			replacement: "B",
			want:        "a\nB\nc",
		},
		{
			name:        "replace range with multiline",
			content:     "a\nb\nc\nd",
			start:       2,
			end:         3,
			replacement: "x\ny\nz",
			want:        "a\nx\ny\nz\nd",
		},
		{
			name:        "replace first line",
			content:     "a\nb",
			start:       1,
			end:         1,
			replacement: "A",
			want:        "A\nb",
		},
		{
			name:    "out of bounds",
			content: "a\nb",
			start:   1,
			end:     5,
			wantErr: true,
		},
		{
			name:    "inverted range",
			content: "a\nb\nc",
			start:   3,
			end:     2,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := replaceLines(tc.content, tc.start, tc.end, tc.replacement)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
