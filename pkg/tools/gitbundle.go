package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/gitexec"
	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// GitBundleTool works with local git bundles. Actions: create, verify,
// list-heads, unbundle. Everything runs against a local working tree through
// the git CLI; no provider is involved.
func GitBundleTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action":      actionSchema("Bundle operation to perform.", "create", "verify", "list-heads", "unbundle"),
		"repository":  stringSchema("Path to the local git repository. Required for create and unbundle."),
		"bundle_path": stringSchema("Path of the bundle file."),
		"refs":        stringArraySchema("Refs to include in the bundle for create. Defaults to --all."),
	}

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_git_bundle",
			Description: "Work with local git bundles: create, verify, list heads and unbundle into a repository.",
			InputSchema: objectSchema(props, "bundle_path"),
		},
		ToolsetGitBundle,
		map[string]Action{
			"create": {
				Requires: []string{"repository", "bundle_path"},
				Handler:  bundleCreate,
			},
			"verify": {
				ReadOnly: true,
				Requires: []string{"bundle_path"},
				Handler:  bundleVerify,
			},
			"list-heads": {
				ReadOnly: true,
				Requires: []string{"bundle_path"},
				Handler:  bundleListHeads,
			},
			"unbundle": {
				Requires: []string{"repository", "bundle_path"},
				Handler:  bundleUnbundle,
			},
		},
		WithLocal(),
	)
}

func bundleCreate(ctx context.Context, deps ToolDependencies, _ provider.Provider, args map[string]any) (any, string, error) {
	repository, _ := RequiredParam[string](args, "repository")
	bundlePath, _ := RequiredParam[string](args, "bundle_path")
	refs, err := OptionalStringArrayParam(args, "refs")
	if err != nil {
		return nil, "", err
	}
	if err := gitexec.ValidateWorkDir(repository); err != nil {
		return nil, "", err
	}

	cmdArgs := []string{"bundle", "create", bundlePath}
	if len(refs) == 0 {
		cmdArgs = append(cmdArgs, "--all")
	} else {
		cmdArgs = append(cmdArgs, refs...)
	}

	if _, err := deps.Git().Run(ctx, repository, cmdArgs...); err != nil {
		return nil, "", err
	}
	data := map[string]any{"bundle_path": bundlePath, "refs": refs}
	return data, fmt.Sprintf("bundle created at %s", bundlePath), nil
}

func bundleVerify(ctx context.Context, deps ToolDependencies, _ provider.Provider, args map[string]any) (any, string, error) {
	bundlePath, _ := RequiredParam[string](args, "bundle_path")
	repository, err := OptionalParam[string](args, "repository")
	if err != nil {
		return nil, "", err
	}
	if repository == "" {
		repository = "."
	}

	out, err := deps.Git().Run(ctx, repository, "bundle", "verify", bundlePath)
	if err != nil {
		return nil, "", err
	}
	data := map[string]any{"bundle_path": bundlePath, "output": strings.TrimSpace(out)}
	return data, fmt.Sprintf("bundle %s is valid", bundlePath), nil
}

func bundleListHeads(ctx context.Context, deps ToolDependencies, _ provider.Provider, args map[string]any) (any, string, error) {
	bundlePath, _ := RequiredParam[string](args, "bundle_path")
	repository, err := OptionalParam[string](args, "repository")
	if err != nil {
		return nil, "", err
	}
	if repository == "" {
		repository = "."
	}

	out, err := deps.Git().Run(ctx, repository, "bundle", "list-heads", bundlePath)
	if err != nil {
		return nil, "", err
	}

	type head struct {
		SHA string `json:"sha"`
		Ref string `json:"ref"`
	}
	var heads []head
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		heads = append(heads, head{SHA: fields[0], Ref: fields[1]})
	}

	data := map[string]any{"bundle_path": bundlePath, "heads": heads}
	return data, fmt.Sprintf("%d heads in bundle %s", len(heads), bundlePath), nil
}

func bundleUnbundle(ctx context.Context, deps ToolDependencies, _ provider.Provider, args map[string]any) (any, string, error) {
	repository, _ := RequiredParam[string](args, "repository")
	bundlePath, _ := RequiredParam[string](args, "bundle_path")
	if err := gitexec.ValidateWorkDir(repository); err != nil {
		return nil, "", err
	}

	out, err := deps.Git().Run(ctx, repository, "bundle", "unbundle", bundlePath)
	if err != nil {
		return nil, "", err
	}
	data := map[string]any{"bundle_path": bundlePath, "output": strings.TrimSpace(out)}
	return data, fmt.Sprintf("bundle %s unbundled into %s", bundlePath, repository), nil
}
