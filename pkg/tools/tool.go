package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/envelope"
	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// ActionHandler implements a single action of a tool. It returns the payload
// for the response envelope, a human-readable message, and an error. A nil
// payload is omitted from the envelope.
type ActionHandler func(ctx context.Context, deps ToolDependencies, p provider.Provider, args map[string]any) (any, string, error)

// Action describes one entry of a tool's action enum.
type Action struct {
	// ReadOnly marks actions that do not mutate remote state. When a
	// provider lacks the capability for a read-only action the tool degrades
	// to a success envelope with empty data; mutating actions fail hard.
	ReadOnly bool

	// Requires lists parameters that must be present and non-empty for this
	// action, beyond what the input schema already enforces.
	Requires []string

	Handler ActionHandler
}

// GuardFunc can veto a request before dispatch, e.g. to reject a whole tool
// for providers that cannot support it. The returned error is surfaced as a
// failure envelope.
type GuardFunc func(p provider.Provider, action string) error

type actionToolConfig struct {
	guard           GuardFunc
	autoDetectOwner bool
	local           bool
}

// ActionToolOption configures NewActionTool.
type ActionToolOption func(*actionToolConfig)

// WithGuard installs a pre-dispatch veto.
func WithGuard(g GuardFunc) ActionToolOption {
	return func(c *actionToolConfig) { c.guard = g }
}

// WithAutoDetectOwner fills the "owner" argument with the authenticated
// user's login when the caller omits it. Detection is best effort; failures
// are logged and the handler sees the argument unset.
func WithAutoDetectOwner() ActionToolOption {
	return func(c *actionToolConfig) { c.autoDetectOwner = true }
}

// WithLocal marks a tool that operates on the local filesystem only. No
// provider is resolved and handlers receive a nil provider.
func WithLocal() ActionToolOption {
	return func(c *actionToolConfig) { c.local = true }
}

// NewActionTool wires a tool definition and its action table into a
// ServerTool. All tools share the same request lifecycle: decode arguments,
// validate against the input schema, resolve the provider, check the action
// and its required parameters, then dispatch. Responses always carry the
// response envelope, including failures, so the tool result itself never
// returns a protocol-level error.
func NewActionTool(tool mcp.Tool, toolset inventory.ToolsetMetadata, actions map[string]Action, opts ...ActionToolOption) inventory.ServerTool {
	cfg := actionToolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if tool.Annotations == nil {
		tool.Annotations = &mcp.ToolAnnotations{}
	}
	tool.Annotations.ReadOnlyHint = allReadOnly(actions)

	schema, ok := tool.InputSchema.(*jsonschema.Schema)
	if !ok {
		panic("tool input schema is not a *jsonschema.Schema: " + tool.Name)
	}
	resolved := mustResolve(schema)

	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return envelope.Fail("", fmt.Sprintf("failed to decode arguments: %v", err)).ToolResult(), nil
			}
		}

		// The action is checked before schema validation so that values
		// outside the enum report "unsupported action" rather than a raw
		// validation error. Every failure path returns an envelope.
		action, err := RequiredParam[string](args, "action")
		if err != nil {
			return envelope.FailErr("", err).ToolResult(), nil
		}
		act, ok := actions[action]
		if !ok {
			return envelope.Fail(action, fmt.Sprintf("unsupported action: %s", action)).ToolResult(), nil
		}

		if err := resolved.Validate(args); err != nil {
			return envelope.Fail(action, fmt.Sprintf("invalid arguments: %v", err)).ToolResult(), nil
		}

		deps := MustDepsFromContext(ctx)

		var p provider.Provider
		if !cfg.local {
			providerName, err := OptionalParam[string](args, "provider")
			if err != nil {
				return envelope.FailErr(action, err).ToolResult(), nil
			}
			p, err = deps.Providers().Resolve(providerName)
			if err != nil {
				return envelope.FailErr(action, err).ToolResult(), nil
			}

			if cfg.guard != nil {
				if err := cfg.guard(p, action); err != nil {
					return envelope.FailErr(action, err).ToolResult(), nil
				}
			}

			if cfg.autoDetectOwner {
				if owner, _ := OptionalParam[string](args, "owner"); owner == "" {
					login, err := deps.Identity().Login(ctx, p)
					if err != nil {
						deps.Logger().Warn("owner auto-detection failed", "provider", p.Name(), "error", err)
					} else {
						args["owner"] = login
					}
				}
			}
		}

		if missing := missingParams(args, act.Requires); len(missing) > 0 {
			return envelope.Fail(action, fmt.Sprintf("required parameters not provided for action %q: %s", action, strings.Join(missing, ", "))).ToolResult(), nil
		}

		data, message, err := act.Handler(ctx, deps, p, args)
		if err != nil {
			if provider.IsNotSupported(err) && act.ReadOnly {
				// Read-only queries degrade gracefully on providers
				// without the capability.
				return envelope.Ok(action, err.Error(), map[string]any{"supported": false}).ToolResult(), nil
			}
			return envelope.FailErr(action, err).ToolResult(), nil
		}
		return envelope.Ok(action, message, data).ToolResult(), nil
	}

	return inventory.NewServerToolFromHandler(tool, toolset, handler)
}

func allReadOnly(actions map[string]Action) bool {
	for _, act := range actions {
		if !act.ReadOnly {
			return false
		}
	}
	return true
}

// mustResolve resolves an input schema for runtime validation. Schemas are
// authored in this package, so a resolution failure is a programming error.
func mustResolve(schema *jsonschema.Schema) *jsonschema.Resolved {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("invalid tool input schema: %v", err))
	}
	return resolved
}
