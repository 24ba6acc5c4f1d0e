package gitea

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// newTestServer serves canned JSON per route and always answers the version
// probe the SDK issues before feature-gated calls.
func newTestServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "1.22.0"})
	})
	for route, body := range routes {
		body := body
		mux.HandleFunc(route, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(body)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCurrentUser(t *testing.T) {
	server := newTestServer(t, map[string]any{
		"/api/v1/user": map[string]any{"id": 1, "login": "tester", "username": "tester"},
	})

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	login, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tester", login)
}

func TestGetFileDecodesContent(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("# demo\n"))
	server := newTestServer(t, map[string]any{
		"/api/v1/repos/acme/demo/contents/README.md": map[string]any{
			"name":     "README.md",
			"path":     "README.md",
			"sha":      "abc123",
			"type":     "file",
			"size":     7,
			"encoding": "base64",
			"content":  encoded,
		},
	})

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	file, err := client.GetFile(context.Background(), "acme", "demo", "README.md", "")
	require.NoError(t, err)
	assert.Equal(t, "README.md", file.Path)
	assert.Equal(t, "abc123", file.SHA)
	assert.Equal(t, "# demo\n", file.Content)
}

func TestCreateIssueSkipsLabels(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/version", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "1.22.0"})
	})
	mux.HandleFunc("/api/v1/repos/acme/demo/issues", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "number": 5, "title": gotBody["title"]})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	_, err = client.CreateIssue(context.Background(), "acme", "demo", provider.IssueOptions{
		Title:  "broken build",
		Body:   "red",
		Labels: []string{"bug"},
	})
	require.NoError(t, err)
	assert.Equal(t, "broken build", gotBody["title"])
	assert.NotContains(t, gotBody, "labels", "label names cannot be sent, the API wants IDs")
}

func TestMirrorRepository(t *testing.T) {
	server := newTestServer(t, map[string]any{
		"/api/v1/repos/migrate": map[string]any{
			"id":        10,
			"name":      "mirror-demo",
			"full_name": "tester/mirror-demo",
			"mirror":    true,
		},
	})

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	result, err := client.MirrorRepository(context.Background(), "https://example.com/acme/demo.git", "tester", "mirror-demo")
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestPingWebhookNotSupported(t *testing.T) {
	server := newTestServer(t, nil)

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	err = client.PingWebhook(context.Background(), "acme", "demo", 1)
	require.Error(t, err)
	assert.True(t, provider.IsNotSupported(err))
}

func TestCapabilitySurface(t *testing.T) {
	server := newTestServer(t, nil)

	client, err := New(server.URL, "token")
	require.NoError(t, err)

	var p provider.Provider = client
	_, hasIssues := p.(provider.Issues)
	_, hasFiles := p.(provider.Files)
	_, hasMirrors := p.(provider.RepositoryMirrors)
	_, hasWorkflows := p.(provider.Workflows)
	_, hasDeployments := p.(provider.Deployments)
	_, hasReviews := p.(provider.Reviews)

	assert.True(t, hasIssues)
	assert.True(t, hasFiles)
	assert.True(t, hasMirrors)
	assert.False(t, hasWorkflows, "gitea has no workflow management API")
	assert.False(t, hasDeployments, "gitea has no deployments API")
	assert.False(t, hasReviews, "code review tools are rejected for gitea")
}
