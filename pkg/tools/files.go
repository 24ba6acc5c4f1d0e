package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// FilesTool reads and writes repository file contents. Actions: get, create,
// update, delete, list.
func FilesTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action":   actionSchema("File operation to perform.", "get", "create", "update", "delete", "list"),
		"provider": providerSchema(),
		"owner":    ownerSchema(),
		"repo":     repoSchema(),
		"path":     stringSchema("File path within the repository. For list, a directory path (empty for the root)."),
		"content":  stringSchema("File content for create and update."),
		"message":  stringSchema("Commit message. Required for create, update and delete."),
		"branch":   stringSchema("Branch to commit to or read from. Defaults to the default branch."),
		"sha":      stringSchema("Blob SHA of the file being replaced. Resolved automatically for update when omitted."),
		"ref":      stringSchema("Ref to read from for get and list (branch, tag or commit SHA)."),
	}

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_files",
			Description: "Read and write repository files: get, create, update, delete and list directory contents.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetFiles,
		map[string]Action{
			"get": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "path"},
				Handler:  filesGet,
			},
			"create": {
				Requires: []string{"owner", "repo", "path", "content", "message"},
				Handler:  filesCreate,
			},
			"update": {
				Requires: []string{"owner", "repo", "path", "content", "message"},
				Handler:  filesUpdate,
			},
			"delete": {
				Requires: []string{"owner", "repo", "path", "message"},
				Handler:  filesDelete,
			},
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  filesList,
			},
		},
		WithAutoDetectOwner(),
	)
}

func filesCapability(p provider.Provider) (provider.Files, error) {
	files, ok := p.(provider.Files)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "files")
	}
	return files, nil
}

func fileWriteOptionsFromArgs(args map[string]any) (provider.FileWriteOptions, error) {
	content, err := OptionalParam[string](args, "content")
	if err != nil {
		return provider.FileWriteOptions{}, err
	}
	message, err := OptionalParam[string](args, "message")
	if err != nil {
		return provider.FileWriteOptions{}, err
	}
	branch, err := OptionalParam[string](args, "branch")
	if err != nil {
		return provider.FileWriteOptions{}, err
	}
	sha, err := OptionalParam[string](args, "sha")
	if err != nil {
		return provider.FileWriteOptions{}, err
	}
	return provider.FileWriteOptions{
		Content: content,
		Message: message,
		Branch:  branch,
		SHA:     sha,
	}, nil
}

func filesGet(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	files, err := filesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	path, _ := RequiredParam[string](args, "path")
	ref, err := OptionalParam[string](args, "ref")
	if err != nil {
		return nil, "", err
	}

	file, err := files.GetFile(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get file: %w", err)
	}
	return file, fmt.Sprintf("file %s retrieved", path), nil
}

func filesCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	files, err := filesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	path, _ := RequiredParam[string](args, "path")
	opts, err := fileWriteOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	result, err := files.CreateFile(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file: %w", err)
	}
	return result, fmt.Sprintf("file %s created", path), nil
}

// filesUpdate resolves the current blob SHA first when the caller did not
// supply one, so updates work without a prior get round-trip on the client
// side.
func filesUpdate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	files, err := filesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	path, _ := RequiredParam[string](args, "path")
	opts, err := fileWriteOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	if opts.SHA == "" {
		current, err := files.GetFile(ctx, owner, repo, path, opts.Branch)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve current file SHA: %w", err)
		}
		opts.SHA = current.SHA
	}

	result, err := files.UpdateFile(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update file: %w", err)
	}
	return result, fmt.Sprintf("file %s updated", path), nil
}

func filesDelete(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	files, err := filesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	path, _ := RequiredParam[string](args, "path")
	opts, err := fileWriteOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	if opts.SHA == "" {
		current, err := files.GetFile(ctx, owner, repo, path, opts.Branch)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve current file SHA: %w", err)
		}
		opts.SHA = current.SHA
	}

	result, err := files.DeleteFile(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to delete file: %w", err)
	}
	return result, fmt.Sprintf("file %s deleted", path), nil
}

func filesList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	files, err := filesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	dir, err := OptionalParam[string](args, "path")
	if err != nil {
		return nil, "", err
	}
	ref, err := OptionalParam[string](args, "ref")
	if err != nil {
		return nil, "", err
	}

	entries, err := files.ListFiles(ctx, owner, repo, dir, ref)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list directory: %w", err)
	}
	return entries, fmt.Sprintf("directory listing for %s/%s", owner, repo), nil
}
