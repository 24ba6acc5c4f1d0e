package tools

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vcsbridge/vcs-mcp-server/pkg/gitexec"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// depsContextKey is the context key for ToolDependencies.
// Using a private type prevents collisions with other packages.
type depsContextKey struct{}

// ErrDepsNotInContext is returned when ToolDependencies is not found in context.
var ErrDepsNotInContext = errors.New("ToolDependencies not found in context; use ContextWithDeps to inject")

// ContextWithDeps returns a new context with the ToolDependencies stored in it.
// Dependencies are injected at request time by server middleware rather than
// captured in closures at registration time.
func ContextWithDeps(ctx context.Context, deps ToolDependencies) context.Context {
	return context.WithValue(ctx, depsContextKey{}, deps)
}

// DepsFromContext retrieves ToolDependencies from the context.
// Returns the deps and true if found, or nil and false if not present.
func DepsFromContext(ctx context.Context) (ToolDependencies, bool) {
	deps, ok := ctx.Value(depsContextKey{}).(ToolDependencies)
	return deps, ok
}

// MustDepsFromContext retrieves ToolDependencies from the context.
// Panics if deps are not found - use this in handlers where deps are required.
func MustDepsFromContext(ctx context.Context) ToolDependencies {
	deps, ok := DepsFromContext(ctx)
	if !ok {
		panic(ErrDepsNotInContext)
	}
	return deps
}

// ToolDependencies defines the interface for dependencies that tool
// dispatchers need. It is an interface so tests can substitute fakes without
// constructing real provider clients.
type ToolDependencies interface {
	// Providers returns the process-wide provider registry.
	Providers() *provider.Registry

	// Identity returns the cache used for auto-user-detection.
	Identity() *provider.IdentityCache

	// Git returns the runner used for local git subcommands.
	Git() gitexec.Runner

	// Logger returns the structured logger for best-effort diagnostics.
	Logger() *slog.Logger
}

// BaseDeps is the standard implementation of ToolDependencies.
type BaseDeps struct {
	Registry      *provider.Registry
	IdentityCache *provider.IdentityCache
	GitRunner     gitexec.Runner
	Log           *slog.Logger
}

// NewBaseDeps creates a BaseDeps with the provided collaborators. A nil
// logger is replaced with slog.Default.
func NewBaseDeps(registry *provider.Registry, identity *provider.IdentityCache, git gitexec.Runner, logger *slog.Logger) *BaseDeps {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseDeps{
		Registry:      registry,
		IdentityCache: identity,
		GitRunner:     git,
		Log:           logger,
	}
}

// Providers implements ToolDependencies.
func (d *BaseDeps) Providers() *provider.Registry { return d.Registry }

// Identity implements ToolDependencies.
func (d *BaseDeps) Identity() *provider.IdentityCache { return d.IdentityCache }

// Git implements ToolDependencies.
func (d *BaseDeps) Git() gitexec.Runner { return d.GitRunner }

// Logger implements ToolDependencies.
func (d *BaseDeps) Logger() *slog.Logger { return d.Log }
