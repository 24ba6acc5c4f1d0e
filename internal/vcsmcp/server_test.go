package vcsmcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMCPServer_CreatesSuccessfully verifies that the server can be created
// with the deps injection middleware properly configured.
func TestNewMCPServer_CreatesSuccessfully(t *testing.T) {
	t.Parallel()

	cfg := MCPServerConfig{
		Version:     "test",
		GitHubToken: "test-token",
		Toolsets:    []string{"issues"},
	}

	server, err := NewMCPServer(cfg)
	require.NoError(t, err, "expected server creation to succeed")
	require.NotNil(t, server, "expected server to be non-nil")

	// Tool handlers read their dependencies from the request context, so a
	// successful construction means the middleware and tool registration
	// both went through. Handler behavior with injected deps is covered in
	// pkg/tools/*_test.go.
}

func TestNewMCPServer_NoProviders(t *testing.T) {
	t.Parallel()

	_, err := NewMCPServer(MCPServerConfig{Version: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no providers configured")
}

func TestNewMCPServer_UnknownDefaultProvider(t *testing.T) {
	t.Parallel()

	_, err := NewMCPServer(MCPServerConfig{
		Version:         "test",
		GitHubToken:     "test-token",
		DefaultProvider: "bitbucket",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default provider")
}

func TestBuildProvidersGitHubOnly(t *testing.T) {
	t.Parallel()

	providers, err := buildProviders(MCPServerConfig{GitHubToken: "test-token"})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "github", providers[0].Name())
}
