package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/inventory"
	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// ReleasesTool manages releases. Actions: create, list, get, update, delete,
// latest.
func ReleasesTool() inventory.ServerTool {
	props := map[string]*jsonschema.Schema{
		"action":           actionSchema("Release operation to perform.", "create", "list", "get", "update", "delete", "latest"),
		"provider":         providerSchema(),
		"owner":            ownerSchema(),
		"repo":             repoSchema(),
		"release_id":       intSchema("Release ID. Required for get, update and delete."),
		"tag_name":         stringSchema("Git tag for the release. Required for create."),
		"name":             stringSchema("Release title."),
		"body":             stringSchema("Release notes."),
		"target_commitish": stringSchema("Commitish the tag is created from when it does not exist yet."),
		"draft":            boolSchema("Create the release as a draft."),
		"prerelease":       boolSchema("Mark the release as a prerelease."),
	}
	paginationSchema(props)

	return NewActionTool(
		mcp.Tool{
			Name:        "manage_releases",
			Description: "Manage repository releases: create, list, get, update, delete and fetch the latest release.",
			InputSchema: objectSchema(props, "repo"),
		},
		ToolsetReleases,
		map[string]Action{
			"create": {
				Requires: []string{"owner", "repo", "tag_name"},
				Handler:  releasesCreate,
			},
			"list": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  releasesList,
			},
			"get": {
				ReadOnly: true,
				Requires: []string{"owner", "repo", "release_id"},
				Handler:  releasesGet,
			},
			"update": {
				Requires: []string{"owner", "repo", "release_id"},
				Handler:  releasesUpdate,
			},
			"delete": {
				Requires: []string{"owner", "repo", "release_id"},
				Handler:  releasesDelete,
			},
			"latest": {
				ReadOnly: true,
				Requires: []string{"owner", "repo"},
				Handler:  releasesLatest,
			},
		},
		WithAutoDetectOwner(),
	)
}

func releasesCapability(p provider.Provider) (provider.Releases, error) {
	releases, ok := p.(provider.Releases)
	if !ok {
		return nil, provider.NotSupported(p.Name(), "releases")
	}
	return releases, nil
}

func releaseOptionsFromArgs(args map[string]any) (provider.ReleaseOptions, error) {
	tagName, err := OptionalParam[string](args, "tag_name")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	name, err := OptionalParam[string](args, "name")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	body, err := OptionalParam[string](args, "body")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	target, err := OptionalParam[string](args, "target_commitish")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	draft, err := OptionalParam[bool](args, "draft")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	prerelease, err := OptionalParam[bool](args, "prerelease")
	if err != nil {
		return provider.ReleaseOptions{}, err
	}
	return provider.ReleaseOptions{
		TagName:         tagName,
		Name:            name,
		Body:            body,
		TargetCommitish: target,
		Draft:           draft,
		Prerelease:      prerelease,
	}, nil
}

func releasesCreate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	opts, err := releaseOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	release, err := releases.CreateRelease(ctx, owner, repo, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create release: %w", err)
	}
	return release, fmt.Sprintf("release %s created in %s/%s", opts.TagName, owner, repo), nil
}

func releasesList(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	pagination, err := OptionalPaginationParams(args)
	if err != nil {
		return nil, "", err
	}

	list, err := releases.ListReleases(ctx, owner, repo, pagination)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list releases: %w", err)
	}
	return list, fmt.Sprintf("releases listed for %s/%s", owner, repo), nil
}

func releasesGet(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "release_id")
	if err != nil {
		return nil, "", err
	}

	release, err := releases.GetRelease(ctx, owner, repo, int64(id))
	if err != nil {
		return nil, "", fmt.Errorf("failed to get release: %w", err)
	}
	return release, fmt.Sprintf("release %d retrieved", id), nil
}

func releasesUpdate(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "release_id")
	if err != nil {
		return nil, "", err
	}
	opts, err := releaseOptionsFromArgs(args)
	if err != nil {
		return nil, "", err
	}

	release, err := releases.UpdateRelease(ctx, owner, repo, int64(id), opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update release: %w", err)
	}
	return release, fmt.Sprintf("release %d updated", id), nil
}

func releasesDelete(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)
	id, err := RequiredInt(args, "release_id")
	if err != nil {
		return nil, "", err
	}

	if err := releases.DeleteRelease(ctx, owner, repo, int64(id)); err != nil {
		return nil, "", fmt.Errorf("failed to delete release: %w", err)
	}
	return nil, fmt.Sprintf("release %d deleted", id), nil
}

func releasesLatest(ctx context.Context, _ ToolDependencies, p provider.Provider, args map[string]any) (any, string, error) {
	releases, err := releasesCapability(p)
	if err != nil {
		return nil, "", err
	}
	owner, repo := args["owner"].(string), args["repo"].(string)

	release, err := releases.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get latest release: %w", err)
	}
	return release, fmt.Sprintf("latest release retrieved for %s/%s", owner, repo), nil
}
