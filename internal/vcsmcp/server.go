package vcsmcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/gitexec"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider/gitea"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider/github"
	"github.com/vcsbridge/vcs-mcp-server/pkg/tools"
)

// MCPServerConfig carries everything needed to construct the MCP server.
// Provider credentials are optional individually, but at least one provider
// must be configured.
type MCPServerConfig struct {
	// Version of the server, reported in the MCP initialize handshake.
	Version string

	// GitHubToken authenticates against GitHub. When empty the GitHub
	// provider is not registered.
	GitHubToken string

	// GitHubHost points at a GitHub Enterprise instance. Empty means
	// github.com.
	GitHubHost string

	// GiteaURL is the base URL of a Gitea instance. When empty the Gitea
	// provider is not registered.
	GiteaURL string

	// GiteaToken authenticates against Gitea.
	GiteaToken string

	// DefaultProvider names the provider used when a tool call omits the
	// provider argument. Empty selects the first registered provider by
	// sorted name.
	DefaultProvider string

	// Toolsets to enable. Nil means the default toolsets; "all" enables
	// everything.
	Toolsets []string

	// Tools lists individual tools enabled regardless of toolset filtering.
	Tools []string

	// ReadOnly restricts the server to tools that do not mutate anything.
	ReadOnly bool

	// Logger receives server diagnostics. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// NewMCPServer builds the MCP server: providers, registry, tool inventory,
// and the middleware that injects tool dependencies into every request
// context.
func NewMCPServer(cfg MCPServerConfig) (*mcp.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	providers, err := buildProviders(cfg)
	if err != nil {
		return nil, err
	}

	registry, err := provider.NewRegistry(cfg.DefaultProvider, providers...)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}

	identity := provider.NewIdentityCache(provider.WithLogger(logger))
	deps := tools.NewBaseDeps(registry, identity, gitexec.ExecRunner{}, logger)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "vcs-mcp-server",
		Title:   "VCS MCP Server",
		Version: cfg.Version,
	}, nil)

	// Tool handlers read their dependencies from the request context, so
	// every inbound method gets them injected here.
	s.AddReceivingMiddleware(func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			return next(tools.ContextWithDeps(ctx, deps), method, req)
		}
	})

	inv := tools.NewInventory(cfg.Toolsets, cfg.Tools, cfg.ReadOnly)
	if unrecognized := inv.UnrecognizedToolsets(); len(unrecognized) > 0 {
		logger.Warn("unrecognized toolsets requested", slog.Any("toolsets", unrecognized))
	}
	inv.RegisterAll(s)

	return s, nil
}

// buildProviders constructs a provider client for each configured backend.
func buildProviders(cfg MCPServerConfig) ([]provider.Provider, error) {
	var providers []provider.Provider

	if cfg.GitHubToken != "" {
		var opts []github.Option
		if cfg.GitHubHost != "" {
			opts = append(opts, github.WithHost(cfg.GitHubHost))
		}
		gh, err := github.New(cfg.GitHubToken, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create github client: %w", err)
		}
		providers = append(providers, gh)
	}

	if cfg.GiteaURL != "" {
		gt, err := gitea.New(cfg.GiteaURL, cfg.GiteaToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create gitea client: %w", err)
		}
		providers = append(providers, gt)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured: set a GitHub token or a Gitea URL")
	}
	return providers, nil
}

// StdioServerConfig wraps MCPServerConfig with stdio-run concerns.
type StdioServerConfig struct {
	MCPServerConfig

	// LogFilePath redirects logs to a file. Empty logs to stderr.
	LogFilePath string
}

// RunStdioServer builds the server and serves it over stdin/stdout until the
// context is cancelled or the process receives an interrupt.
func RunStdioServer(cfg StdioServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, cleanup, err := newLogger(cfg.LogFilePath)
	if err != nil {
		return err
	}
	defer cleanup()
	cfg.Logger = logger

	s, err := NewMCPServer(cfg.MCPServerConfig)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("starting server", slog.String("version", cfg.Version))
	if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

// newLogger opens the log destination. stdout carries the MCP protocol, so
// logs must never go there.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, nil)), func() { _ = file.Close() }, nil
}
