package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/gitexec"
	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// RepositoriesTool manages repositories. Actions: create, list, get, update,
// delete, fork, search, archive, transfer, from-template, mirror, clone.
func RepositoriesTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action": actionSchema("Repository operation to perform.",
			"create", "list", "get", "update", "delete", "fork", "search",
			"archive", "transfer", "from-template", "mirror", "clone"),
		"provider":       providerSchema(),
		"owner":          ownerSchema(),
		"repo":           repoSchema(),
		"name":           stringSchema("Repository name for create, from-template and mirror."),
		"description":    stringSchema("Repository description."),
		"private":        boolSchema("Create the repository as private."),
		"auto_init":      boolSchema("Initialize the repository with an empty commit."),
		"default_branch": stringSchema("Default branch to set on update."),
		"organization":   stringSchema("Organization to fork into. Defaults to the authenticated user."),
		"query":          stringSchema("Search query. Required for search."),
		"new_owner":      stringSchema("Receiving user or organization for transfer."),
		"template_owner": stringSchema("Owner of the template repository for from-template."),
		"template_repo":  stringSchema("Name of the template repository for from-template."),
		"clone_url":      stringSchema("Source URL for mirror and clone."),
		"directory":      stringSchema("Local target directory for clone."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_repositories",
			Description: "Manage repositories: create, list, get, update, delete, fork, search, archive, transfer, instantiate templates, mirror and clone.",
			InputSchema: objectSchema(props),
		},
		ToolsetRepositories,
		map[string]Action{
			"create": {
				Requires: []string{"name"},
				Handler:  reposCreate,
			},
			"list": {
				ReadOnly: true,
				Handler:  reposList,
			},
			"get": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  reposGet,
			},
			"update": {
				Requires: []string{"owner", "repo"},
				Handler:  reposUpdate,
			},
			"delete": {
				Requires: []string{"owner", "repo"},
				Handler:  reposDelete,
			},
			"fork": {
				Requires: []string{"owner", "repo"},
				Handler:  reposFork,
			},
			"search": {
				ReadOnly: true,
				Requires: []string{"query"},
				Handler:  reposSearch,
			},
			"archive": {
				Requires: []string{"owner", "repo"},
				Handler:  reposArchive,
			},
			"transfer": {
				Requires: []string{"owner", "repo", "new_owner"},
				Handler:  reposTransfer,
			},
			"from-template": {
				Requires: []string{"template_owner", "template_repo", "name"},
				Handler:  reposFromTemplate,
			},
			"mirror": {
				Requires: []string{"clone_url", "name"},
				Handler:  reposMirror,
			},
			"clone": {
				Requires: []string{"clone_url", "directory"},
				Handler:  reposClone,
			},
		},
		WithAutoDetectOwner(),
	)
}

func reposCapability(p provider.Provider) (provider.Repositories, error) {
	repos, ok := p.(provider.Repositories)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "repositories")
	}
	return repos, nil
}

func repoOptionsFromArgs(args map[string]any) (provider.RepositoryOptions, error) {
	name, err := OptionalParam[string](args, "name")
	if err != nil {
		return provider.RepositoryOptions{}, err
	}
	description, err := OptionalParam[string](args, "description")
	if err != nil {
		return provider.RepositoryOptions{}, err
	}
	private, err := OptionalParam[bool](args, "private")
	if err != nil {
		return provider.RepositoryOptions{}, err
	}
	autoInit, err := OptionalParam[bool](args, "auto_init")
	if err != nil {
		return provider.RepositoryOptions{}, err
	}
	defaultBranch, err := OptionalParam[string](args, "default_branch")
	if err != nil {
		return provider.RepositoryOptions{}, err
	}
	return provider.RepositoryOptions{
		Name:          name,
		Description:   description,
		Private:       private,
		AutoInit:      autoInit,
		DefaultBranch: defaultBranch,
	}, nil
}

func reposCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	opts, err := repoOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	repo, err := repos.CreateRepository(ctx, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create repository: %w", err)
	}
	return repo, fmt.Sprintf("repository %s created", opts.Name), nil
}

func reposList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := repos.ListRepositories(ctx, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list repositories: %w", err)
	}
	return list, "repositories listed", nil
}

func reposGet(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	result, err := repos.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get repository: %w", err)
	}
	return result, fmt.Sprintf("repository %s/%s retrieved", owner, repo), nil
}

func reposUpdate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	opts, err := repoOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	result, err := repos.UpdateRepository(ctx, owner, repo, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update repository: %w", err)
	}
	return result, fmt.Sprintf("repository %s/%s updated", owner, repo), nil
}

func reposDelete(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	if err := repos.DeleteRepository(ctx, owner, repo); err != nil {
		return nil, "", fmt.Errorf("failed to delete repository: %w", err)
	}
	return nil, fmt.Sprintf("repository %s/%s deleted", owner, repo), nil
}

func reposFork(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	organization, err := OptionalParam[string](args, "organization")
	if err != nil {
		return nil, "", err
	}

	fork, err := repos.ForkRepository(ctx, owner, repo, organization)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fork repository: %w", err)
	}
	return fork, fmt.Sprintf("repository %s/%s forked", owner, repo), nil
}

func reposSearch(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	query, _ := RequiredParam[string](args, "query")
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	results, err := repos.SearchRepositories(ctx, query, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to search repositories: %w", err)
	}
	return results, fmt.Sprintf("repositories matching %q", query), nil
}

func reposArchive(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	result, err := repos.ArchiveRepository(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to archive repository: %w", err)
	}
	return result, fmt.Sprintf("repository %s/%s archived", owner, repo), nil
}

func reposTransfer(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	repos, err := reposCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	newOwner, _ := RequiredParam[string](args, "new_owner")

	result, err := repos.TransferRepository(ctx, owner, repo, newOwner)
	if err != nil {
		return nil, "", fmt.Errorf("failed to transfer repository: %w", err)
	}
	return result, fmt.Sprintf("repository %s/%s transferred to %s", owner, repo, newOwner), nil
}

func reposFromTemplate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	templates, ok := p.(provider.RepositoryTemplates)
	if !ok {
		return nil, "", provider.NotSupported(p.Name(), "repository templates")
	}
	templateOwner, _ := RequiredParam[string](args, "template_owner")
	templateRepo, _ := RequiredParam[string](args, "template_repo")
	name, _ := RequiredParam[string](args, "name")
	owner, err := OptionalParam[string](args, "owner")
	if err != nil {
		return nil, "", err
	}
	private, err := OptionalParam[bool](args, "private")
	if err != nil {
		return nil, "", err
	}

	repo, err := templates.CreateFromTemplate(ctx, templateOwner, templateRepo, owner, name, private)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create repository from template: %w", err)
	}
	return repo, fmt.Sprintf("repository %s created from template %s/%s", name, templateOwner, templateRepo), nil
}

func reposMirror(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	mirrors, ok := p.(provider.RepositoryMirrors)
	if !ok {
		return nil, "", provider.NotSupported(p.Name(), "repository mirrors")
	}
	cloneURL, _ := RequiredParam[string](args, "clone_url")
	name, _ := RequiredParam[string](args, "name")
	owner, err := OptionalParam[string](args, "owner")
	if err != nil {
		return nil, "", err
	}

	mirror, err := mirrors.MirrorRepository(ctx, cloneURL, owner, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to mirror repository: %w", err)
	}
	return mirror, fmt.Sprintf("mirror %s created from %s", name, cloneURL), nil
}

// reposClone runs a local git clone; the provider is only used for naming in
// diagnostics, so this works identically for every backend.
func reposClone(ctx context.Context, deps ToolDependencies, _ provider.Provider, args map[string]any) (any, string, error) {
	cloneURL, _ := RequiredParam[string](args, "clone_url")
	directory, _ := RequiredParam[string](args, "directory")

	if _, err := deps.Git().Run(ctx, ".", "clone", cloneURL, directory); err != nil {
		return nil, "", err
	}
	if err := gitexec.ValidateWorkDir(directory); err != nil {
		return nil, "", fmt.Errorf("clone finished but target is missing: %w", err)
	}
	return map[string]any{"directory": directory, "clone_url": cloneURL}, fmt.Sprintf("repository cloned into %s", directory), nil
}
