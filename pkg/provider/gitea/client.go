// Package gitea implements the provider abstraction on top of the Gitea API.
//
// Gitea covers the core repository surface: issues, releases, repositories,
// mirrors, files and webhooks. Capabilities Gitea has no API for (workflow
// management, deployments, security insights, analytics, reviews) are simply
// not implemented, so tools report them as unsupported.
package gitea

import (
	"context"
	"encoding/base64"
	"fmt"

	"code.gitea.io/sdk/gitea"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// Client is the Gitea-backed provider.
//
// The Gitea SDK binds an HTTP client at construction rather than taking a
// context per call, so request contexts are not propagated to the wire.
type Client struct {
	gt *gitea.Client
}

// New creates a Gitea provider for the given instance URL and token.
func New(url, token string, opts ...gitea.ClientOption) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("gitea URL is required")
	}
	options := append([]gitea.ClientOption{gitea.SetToken(token)}, opts...)
	gt, err := gitea.NewClient(url, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitea client: %w", err)
	}
	return &Client{gt: gt}, nil
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "gitea" }

// CurrentUser implements provider.Provider.
func (c *Client) CurrentUser(_ context.Context) (string, error) {
	user, _, err := c.gt.GetMyUserInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.UserName, nil
}

func listOpts(opts provider.ListOptions) gitea.ListOptions {
	return gitea.ListOptions{Page: opts.Page, PageSize: opts.PerPage}
}

// --- Issues ---

// CreateIssue ignores label names: the Gitea API takes label IDs on create,
// which callers do not have. Labels can be attached with a follow-up update
// in the Gitea UI or API.
func (c *Client) CreateIssue(_ context.Context, owner, repo string, opts provider.IssueOptions) (any, error) {
	issue, _, err := c.gt.CreateIssue(owner, repo, gitea.CreateIssueOption{
		Title:     opts.Title,
		Body:      opts.Body,
		Assignees: opts.Assignees,
	})
	return issue, err
}

func (c *Client) ListIssues(_ context.Context, owner, repo string, opts provider.IssueListOptions) (any, error) {
	giteaOpts := gitea.ListIssueOption{
		ListOptions: listOpts(opts.ListOptions),
		Labels:      opts.Labels,
	}
	switch opts.State {
	case "closed":
		giteaOpts.State = gitea.StateClosed
	case "all", "":
		giteaOpts.State = gitea.StateAll
	default:
		giteaOpts.State = gitea.StateOpen
	}
	issues, _, err := c.gt.ListRepoIssues(owner, repo, giteaOpts)
	return issues, err
}

func (c *Client) GetIssue(_ context.Context, owner, repo string, number int64) (any, error) {
	issue, _, err := c.gt.GetIssue(owner, repo, number)
	return issue, err
}

func (c *Client) UpdateIssue(_ context.Context, owner, repo string, number int64, opts provider.IssueOptions) (any, error) {
	edit := gitea.EditIssueOption{
		Title:     opts.Title,
		Assignees: opts.Assignees,
	}
	if opts.Body != "" {
		edit.Body = &opts.Body
	}
	switch opts.State {
	case "closed":
		state := gitea.StateClosed
		edit.State = &state
	case "open":
		state := gitea.StateOpen
		edit.State = &state
	}
	issue, _, err := c.gt.EditIssue(owner, repo, number, edit)
	return issue, err
}

func (c *Client) CommentIssue(_ context.Context, owner, repo string, number int64, body string) (any, error) {
	comment, _, err := c.gt.CreateIssueComment(owner, repo, number, gitea.CreateIssueCommentOption{
		Body: body,
	})
	return comment, err
}

// --- Releases ---

func (c *Client) CreateRelease(_ context.Context, owner, repo string, opts provider.ReleaseOptions) (any, error) {
	release, _, err := c.gt.CreateRelease(owner, repo, gitea.CreateReleaseOption{
		TagName:      opts.TagName,
		Target:       opts.TargetCommitish,
		Title:        opts.Name,
		Note:         opts.Body,
		IsDraft:      opts.Draft,
		IsPrerelease: opts.Prerelease,
	})
	return release, err
}

func (c *Client) ListReleases(_ context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	releases, _, err := c.gt.ListReleases(owner, repo, gitea.ListReleasesOptions{
		ListOptions: listOpts(opts),
	})
	return releases, err
}

func (c *Client) GetRelease(_ context.Context, owner, repo string, id int64) (any, error) {
	release, _, err := c.gt.GetRelease(owner, repo, id)
	return release, err
}

func (c *Client) GetLatestRelease(_ context.Context, owner, repo string) (any, error) {
	release, _, err := c.gt.GetLatestRelease(owner, repo)
	return release, err
}

func (c *Client) UpdateRelease(_ context.Context, owner, repo string, id int64, opts provider.ReleaseOptions) (any, error) {
	edit := gitea.EditReleaseOption{
		TagName: opts.TagName,
		Target:  opts.TargetCommitish,
		Title:   opts.Name,
		Note:    opts.Body,
	}
	release, _, err := c.gt.EditRelease(owner, repo, id, edit)
	return release, err
}

func (c *Client) DeleteRelease(_ context.Context, owner, repo string, id int64) error {
	_, err := c.gt.DeleteRelease(owner, repo, id)
	return err
}

// --- Repositories ---

func (c *Client) CreateRepository(_ context.Context, opts provider.RepositoryOptions) (any, error) {
	repo, _, err := c.gt.CreateRepo(gitea.CreateRepoOption{
		Name:          opts.Name,
		Description:   opts.Description,
		Private:       opts.Private,
		AutoInit:      opts.AutoInit,
		DefaultBranch: opts.DefaultBranch,
	})
	return repo, err
}

func (c *Client) ListRepositories(_ context.Context, opts provider.ListOptions) (any, error) {
	repos, _, err := c.gt.ListMyRepos(gitea.ListReposOptions{
		ListOptions: listOpts(opts),
	})
	return repos, err
}

func (c *Client) GetRepository(_ context.Context, owner, repo string) (any, error) {
	repository, _, err := c.gt.GetRepo(owner, repo)
	return repository, err
}

func (c *Client) UpdateRepository(_ context.Context, owner, repo string, opts provider.RepositoryOptions) (any, error) {
	edit := gitea.EditRepoOption{}
	if opts.Name != "" {
		edit.Name = &opts.Name
	}
	if opts.Description != "" {
		edit.Description = &opts.Description
	}
	if opts.DefaultBranch != "" {
		edit.DefaultBranch = &opts.DefaultBranch
	}
	repository, _, err := c.gt.EditRepo(owner, repo, edit)
	return repository, err
}

func (c *Client) DeleteRepository(_ context.Context, owner, repo string) error {
	_, err := c.gt.DeleteRepo(owner, repo)
	return err
}

func (c *Client) ForkRepository(_ context.Context, owner, repo, organization string) (any, error) {
	opts := gitea.CreateForkOption{}
	if organization != "" {
		opts.Organization = &organization
	}
	fork, _, err := c.gt.CreateFork(owner, repo, opts)
	return fork, err
}

func (c *Client) SearchRepositories(_ context.Context, query string, opts provider.ListOptions) (any, error) {
	results, _, err := c.gt.SearchRepos(gitea.SearchRepoOptions{
		Keyword:     query,
		ListOptions: listOpts(opts),
	})
	return results, err
}

func (c *Client) ArchiveRepository(_ context.Context, owner, repo string) (any, error) {
	archived := true
	repository, _, err := c.gt.EditRepo(owner, repo, gitea.EditRepoOption{
		Archived: &archived,
	})
	return repository, err
}

func (c *Client) TransferRepository(_ context.Context, owner, repo, newOwner string) (any, error) {
	repository, _, err := c.gt.TransferRepo(owner, repo, gitea.TransferRepoOption{
		NewOwner: newOwner,
	})
	return repository, err
}

// MirrorRepository implements provider.RepositoryMirrors using Gitea's
// migration endpoint in mirror mode.
func (c *Client) MirrorRepository(_ context.Context, cloneURL, owner, name string) (any, error) {
	mirror, _, err := c.gt.MigrateRepo(gitea.MigrateRepoOption{
		CloneAddr: cloneURL,
		RepoOwner: owner,
		RepoName:  name,
		Mirror:    true,
	})
	return mirror, err
}

// --- Files ---

func (c *Client) GetFile(_ context.Context, owner, repo, path, ref string) (*provider.FileContent, error) {
	file, _, err := c.gt.GetContents(owner, repo, ref, path)
	if err != nil {
		return nil, err
	}
	content := ""
	if file.Content != nil {
		decoded, err := base64.StdEncoding.DecodeString(*file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode file content: %w", err)
		}
		content = string(decoded)
	}
	fc := &provider.FileContent{
		Path:     file.Path,
		SHA:      file.SHA,
		Size:     int(file.Size),
		Content:  content,
		Encoding: "base64",
	}
	if file.HTMLURL != nil {
		fc.HTMLURL = *file.HTMLURL
	}
	return fc, nil
}

func (c *Client) CreateFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	result, _, err := c.gt.CreateFile(owner, repo, path, gitea.CreateFileOptions{
		FileOptions: gitea.FileOptions{
			Message:    opts.Message,
			BranchName: opts.Branch,
		},
		Content: base64.StdEncoding.EncodeToString([]byte(opts.Content)),
	})
	return result, err
}

func (c *Client) UpdateFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	result, _, err := c.gt.UpdateFile(owner, repo, path, gitea.UpdateFileOptions{
		FileOptions: gitea.FileOptions{
			Message:    opts.Message,
			BranchName: opts.Branch,
		},
		SHA:     opts.SHA,
		Content: base64.StdEncoding.EncodeToString([]byte(opts.Content)),
	})
	return result, err
}

func (c *Client) DeleteFile(_ context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	_, err := c.gt.DeleteFile(owner, repo, path, gitea.DeleteFileOptions{
		FileOptions: gitea.FileOptions{
			Message:    opts.Message,
			BranchName: opts.Branch,
		},
		SHA: opts.SHA,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"path": path, "deleted": true}, nil
}

func (c *Client) ListFiles(_ context.Context, owner, repo, dir, ref string) (any, error) {
	entries, _, err := c.gt.ListContents(owner, repo, ref, dir)
	return entries, err
}

// --- Webhooks ---

func (c *Client) CreateWebhook(_ context.Context, owner, repo string, opts provider.WebhookOptions) (any, error) {
	active := true
	if opts.Active != nil {
		active = *opts.Active
	}
	config := map[string]string{
		"url":          opts.URL,
		"content_type": opts.ContentType,
	}
	if opts.Secret != "" {
		config["secret"] = opts.Secret
	}
	hook, _, err := c.gt.CreateRepoHook(owner, repo, gitea.CreateHookOption{
		Type:   gitea.HookTypeGitea,
		Config: config,
		Events: opts.Events,
		Active: active,
	})
	return hook, err
}

func (c *Client) ListWebhooks(_ context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	hooks, _, err := c.gt.ListRepoHooks(owner, repo, gitea.ListHooksOptions{
		ListOptions: listOpts(opts),
	})
	return hooks, err
}

func (c *Client) GetWebhook(_ context.Context, owner, repo string, id int64) (any, error) {
	hook, _, err := c.gt.GetRepoHook(owner, repo, id)
	return hook, err
}

func (c *Client) UpdateWebhook(_ context.Context, owner, repo string, id int64, opts provider.WebhookOptions) (any, error) {
	config := map[string]string{}
	if opts.URL != "" {
		config["url"] = opts.URL
	}
	if opts.ContentType != "" {
		config["content_type"] = opts.ContentType
	}
	if opts.Secret != "" {
		config["secret"] = opts.Secret
	}
	_, err := c.gt.EditRepoHook(owner, repo, id, gitea.EditHookOption{
		Config: config,
		Events: opts.Events,
		Active: opts.Active,
	})
	if err != nil {
		return nil, err
	}
	hook, _, err := c.gt.GetRepoHook(owner, repo, id)
	return hook, err
}

func (c *Client) DeleteWebhook(_ context.Context, owner, repo string, id int64) error {
	_, err := c.gt.DeleteRepoHook(owner, repo, id)
	return err
}

// PingWebhook is not exposed by the Gitea SDK.
func (c *Client) PingWebhook(_ context.Context, _, _ string, _ int64) error {
	return provider.NotSupported(c.Name(), "webhook ping")
}
