// Package github implements the provider abstraction on top of the GitHub
// REST API. It is the reference provider: every capability interface is
// implemented.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v79/github"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// Client is the GitHub-backed provider.
type Client struct {
	gh *github.Client
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	host       string
	httpClient *http.Client
}

// WithHost points the client at a GitHub Enterprise instance.
func WithHost(host string) Option {
	return func(c *clientConfig) { c.host = host }
}

// WithHTTPClient substitutes the underlying HTTP client. Used by tests to
// inject mocked transports.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = httpClient }
}

// New creates a GitHub provider authenticated with the given token.
func New(token string, opts ...Option) (*Client, error) {
	cfg := clientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	gh := github.NewClient(cfg.httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	if cfg.host != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(cfg.host, cfg.host)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub host %q: %w", cfg.host, err)
		}
	}
	return &Client{gh: gh}, nil
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "github" }

// CurrentUser implements provider.Provider.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

func listOpts(opts provider.ListOptions) github.ListOptions {
	return github.ListOptions{Page: opts.Page, PerPage: opts.PerPage}
}

// --- Issues ---

func (c *Client) CreateIssue(ctx context.Context, owner, repo string, opts provider.IssueOptions) (any, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(opts.Title),
	}
	if opts.Body != "" {
		req.Body = github.Ptr(opts.Body)
	}
	if len(opts.Labels) > 0 {
		req.Labels = &opts.Labels
	}
	if len(opts.Assignees) > 0 {
		req.Assignees = &opts.Assignees
	}
	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, req)
	return issue, err
}

func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts provider.IssueListOptions) (any, error) {
	ghOpts := &github.IssueListByRepoOptions{
		State:       opts.State,
		Labels:      opts.Labels,
		ListOptions: listOpts(opts.ListOptions),
	}
	issues, _, err := c.gh.Issues.ListByRepo(ctx, owner, repo, ghOpts)
	return issues, err
}

func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int64) (any, error) {
	issue, _, err := c.gh.Issues.Get(ctx, owner, repo, int(number))
	return issue, err
}

func (c *Client) UpdateIssue(ctx context.Context, owner, repo string, number int64, opts provider.IssueOptions) (any, error) {
	req := &github.IssueRequest{}
	if opts.Title != "" {
		req.Title = github.Ptr(opts.Title)
	}
	if opts.Body != "" {
		req.Body = github.Ptr(opts.Body)
	}
	if opts.State != "" {
		req.State = github.Ptr(opts.State)
	}
	if len(opts.Labels) > 0 {
		req.Labels = &opts.Labels
	}
	if len(opts.Assignees) > 0 {
		req.Assignees = &opts.Assignees
	}
	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, int(number), req)
	return issue, err
}

func (c *Client) CommentIssue(ctx context.Context, owner, repo string, number int64, body string) (any, error) {
	comment, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, int(number), &github.IssueComment{
		Body: github.Ptr(body),
	})
	return comment, err
}

// --- Releases ---

func releaseRequest(opts provider.ReleaseOptions) *github.RepositoryRelease {
	release := &github.RepositoryRelease{
		Draft:      github.Ptr(opts.Draft),
		Prerelease: github.Ptr(opts.Prerelease),
	}
	if opts.TagName != "" {
		release.TagName = github.Ptr(opts.TagName)
	}
	if opts.Name != "" {
		release.Name = github.Ptr(opts.Name)
	}
	if opts.Body != "" {
		release.Body = github.Ptr(opts.Body)
	}
	if opts.TargetCommitish != "" {
		release.TargetCommitish = github.Ptr(opts.TargetCommitish)
	}
	return release
}

func (c *Client) CreateRelease(ctx context.Context, owner, repo string, opts provider.ReleaseOptions) (any, error) {
	release, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, releaseRequest(opts))
	return release, err
}

func (c *Client) ListReleases(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	releases, _, err := c.gh.Repositories.ListReleases(ctx, owner, repo, &ghOpts)
	return releases, err
}

func (c *Client) GetRelease(ctx context.Context, owner, repo string, id int64) (any, error) {
	release, _, err := c.gh.Repositories.GetRelease(ctx, owner, repo, id)
	return release, err
}

func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (any, error) {
	release, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	return release, err
}

func (c *Client) UpdateRelease(ctx context.Context, owner, repo string, id int64, opts provider.ReleaseOptions) (any, error) {
	release, _, err := c.gh.Repositories.EditRelease(ctx, owner, repo, id, releaseRequest(opts))
	return release, err
}

func (c *Client) DeleteRelease(ctx context.Context, owner, repo string, id int64) error {
	_, err := c.gh.Repositories.DeleteRelease(ctx, owner, repo, id)
	return err
}

// --- Repositories ---

func (c *Client) CreateRepository(ctx context.Context, opts provider.RepositoryOptions) (any, error) {
	repo := &github.Repository{
		Name:     github.Ptr(opts.Name),
		Private:  github.Ptr(opts.Private),
		AutoInit: github.Ptr(opts.AutoInit),
	}
	if opts.Description != "" {
		repo.Description = github.Ptr(opts.Description)
	}
	created, _, err := c.gh.Repositories.Create(ctx, "", repo)
	return created, err
}

func (c *Client) ListRepositories(ctx context.Context, opts provider.ListOptions) (any, error) {
	ghOpts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: listOpts(opts),
	}
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, ghOpts)
	return repos, err
}

func (c *Client) GetRepository(ctx context.Context, owner, repo string) (any, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	return repository, err
}

func (c *Client) UpdateRepository(ctx context.Context, owner, repo string, opts provider.RepositoryOptions) (any, error) {
	update := &github.Repository{}
	if opts.Name != "" {
		update.Name = github.Ptr(opts.Name)
	}
	if opts.Description != "" {
		update.Description = github.Ptr(opts.Description)
	}
	if opts.DefaultBranch != "" {
		update.DefaultBranch = github.Ptr(opts.DefaultBranch)
	}
	updated, _, err := c.gh.Repositories.Edit(ctx, owner, repo, update)
	return updated, err
}

func (c *Client) DeleteRepository(ctx context.Context, owner, repo string) error {
	_, err := c.gh.Repositories.Delete(ctx, owner, repo)
	return err
}

func (c *Client) ForkRepository(ctx context.Context, owner, repo, organization string) (any, error) {
	var opts *github.RepositoryCreateForkOptions
	if organization != "" {
		opts = &github.RepositoryCreateForkOptions{Organization: organization}
	}
	fork, _, err := c.gh.Repositories.CreateFork(ctx, owner, repo, opts)
	// Forking is asynchronous; 202 comes back as AcceptedError with the
	// fork already usable.
	if _, accepted := err.(*github.AcceptedError); accepted {
		return fork, nil
	}
	return fork, err
}

func (c *Client) SearchRepositories(ctx context.Context, query string, opts provider.ListOptions) (any, error) {
	ghOpts := &github.SearchOptions{ListOptions: listOpts(opts)}
	results, _, err := c.gh.Search.Repositories(ctx, query, ghOpts)
	return results, err
}

func (c *Client) ArchiveRepository(ctx context.Context, owner, repo string) (any, error) {
	archived, _, err := c.gh.Repositories.Edit(ctx, owner, repo, &github.Repository{
		Archived: github.Ptr(true),
	})
	return archived, err
}

func (c *Client) TransferRepository(ctx context.Context, owner, repo, newOwner string) (any, error) {
	transferred, _, err := c.gh.Repositories.Transfer(ctx, owner, repo, github.TransferRequest{
		NewOwner: newOwner,
	})
	if _, accepted := err.(*github.AcceptedError); accepted {
		return transferred, nil
	}
	return transferred, err
}

// CreateFromTemplate implements provider.RepositoryTemplates.
func (c *Client) CreateFromTemplate(ctx context.Context, templateOwner, templateRepo, owner, name string, private bool) (any, error) {
	req := &github.TemplateRepoRequest{
		Name:    github.Ptr(name),
		Private: github.Ptr(private),
	}
	if owner != "" {
		req.Owner = github.Ptr(owner)
	}
	repo, _, err := c.gh.Repositories.CreateFromTemplate(ctx, templateOwner, templateRepo, req)
	return repo, err
}

// --- Files ---

func (c *Client) GetFile(ctx context.Context, owner, repo, path, ref string) (*provider.FileContent, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}
	return &provider.FileContent{
		Path:     file.GetPath(),
		SHA:      file.GetSHA(),
		Size:     file.GetSize(),
		Content:  content,
		Encoding: file.GetEncoding(),
		HTMLURL:  file.GetHTMLURL(),
	}, nil
}

func fileOpts(opts provider.FileWriteOptions) *github.RepositoryContentFileOptions {
	ghOpts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(opts.Message),
		Content: []byte(opts.Content),
	}
	if opts.Branch != "" {
		ghOpts.Branch = github.Ptr(opts.Branch)
	}
	if opts.SHA != "" {
		ghOpts.SHA = github.Ptr(opts.SHA)
	}
	return ghOpts
}

func (c *Client) CreateFile(ctx context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	result, _, err := c.gh.Repositories.CreateFile(ctx, owner, repo, path, fileOpts(opts))
	return result, err
}

func (c *Client) UpdateFile(ctx context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	result, _, err := c.gh.Repositories.UpdateFile(ctx, owner, repo, path, fileOpts(opts))
	return result, err
}

func (c *Client) DeleteFile(ctx context.Context, owner, repo, path string, opts provider.FileWriteOptions) (any, error) {
	ghOpts := fileOpts(opts)
	ghOpts.Content = nil
	result, _, err := c.gh.Repositories.DeleteFile(ctx, owner, repo, path, ghOpts)
	return result, err
}

func (c *Client) ListFiles(ctx context.Context, owner, repo, dir, ref string) (any, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	_, entries, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, dir, opts)
	return entries, err
}

// --- Webhooks ---

func hookRequest(opts provider.WebhookOptions) *github.Hook {
	hook := &github.Hook{
		Events: opts.Events,
		Active: opts.Active,
		Config: &github.HookConfig{
			URL:         github.Ptr(opts.URL),
			ContentType: github.Ptr(opts.ContentType),
		},
	}
	if opts.Secret != "" {
		hook.Config.Secret = github.Ptr(opts.Secret)
	}
	return hook
}

func (c *Client) CreateWebhook(ctx context.Context, owner, repo string, opts provider.WebhookOptions) (any, error) {
	hook, _, err := c.gh.Repositories.CreateHook(ctx, owner, repo, hookRequest(opts))
	return hook, err
}

func (c *Client) ListWebhooks(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	hooks, _, err := c.gh.Repositories.ListHooks(ctx, owner, repo, &ghOpts)
	return hooks, err
}

func (c *Client) GetWebhook(ctx context.Context, owner, repo string, id int64) (any, error) {
	hook, _, err := c.gh.Repositories.GetHook(ctx, owner, repo, id)
	return hook, err
}

func (c *Client) UpdateWebhook(ctx context.Context, owner, repo string, id int64, opts provider.WebhookOptions) (any, error) {
	hook, _, err := c.gh.Repositories.EditHook(ctx, owner, repo, id, hookRequest(opts))
	return hook, err
}

func (c *Client) DeleteWebhook(ctx context.Context, owner, repo string, id int64) error {
	_, err := c.gh.Repositories.DeleteHook(ctx, owner, repo, id)
	return err
}

func (c *Client) PingWebhook(ctx context.Context, owner, repo string, id int64) error {
	_, err := c.gh.Repositories.PingHook(ctx, owner, repo, id)
	return err
}

// --- Workflow runs ---

func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo string, opts provider.RunListOptions) (any, error) {
	ghOpts := &github.ListWorkflowRunsOptions{
		Actor:       opts.Actor,
		Branch:      opts.Branch,
		Event:       opts.Event,
		Status:      opts.Status,
		ListOptions: listOpts(opts.ListOptions),
	}
	if opts.WorkflowID != "" {
		runs, _, err := c.gh.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, opts.WorkflowID, ghOpts)
		return runs, err
	}
	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, ghOpts)
	return runs, err
}

func (c *Client) CancelWorkflowRun(ctx context.Context, owner, repo string, runID int64) error {
	_, err := c.gh.Actions.CancelWorkflowRunByID(ctx, owner, repo, runID)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return nil
	}
	return err
}

func (c *Client) RerunWorkflow(ctx context.Context, owner, repo string, runID int64) error {
	_, err := c.gh.Actions.RerunWorkflowByID(ctx, owner, repo, runID)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return nil
	}
	return err
}

func (c *Client) ListArtifacts(ctx context.Context, owner, repo string, runID int64, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	artifacts, _, err := c.gh.Actions.ListWorkflowRunArtifacts(ctx, owner, repo, runID, &ghOpts)
	return artifacts, err
}

func (c *Client) ListSecrets(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	secrets, _, err := c.gh.Actions.ListRepoSecrets(ctx, owner, repo, &ghOpts)
	return secrets, err
}

func (c *Client) ListJobs(ctx context.Context, owner, repo string, runID int64, opts provider.ListOptions) (any, error) {
	ghOpts := &github.ListWorkflowJobsOptions{ListOptions: listOpts(opts)}
	jobs, _, err := c.gh.Actions.ListWorkflowJobs(ctx, owner, repo, runID, ghOpts)
	return jobs, err
}

func (c *Client) DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) (string, error) {
	url, _, err := c.gh.Actions.DownloadArtifact(ctx, owner, repo, artifactID, 1)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

// --- Workflows ---

func (c *Client) ListWorkflows(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	workflows, _, err := c.gh.Actions.ListWorkflows(ctx, owner, repo, &ghOpts)
	return workflows, err
}

// CreateWorkflow commits a workflow file under .github/workflows. GitHub has
// no dedicated endpoint for this; it is a contents API write.
func (c *Client) CreateWorkflow(ctx context.Context, owner, repo, fileName, content, message string) (any, error) {
	path := fileName
	if !strings.HasPrefix(path, ".github/workflows/") {
		path = ".github/workflows/" + path
	}
	result, _, err := c.gh.Repositories.CreateFile(ctx, owner, repo, path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: []byte(content),
	})
	return result, err
}

func (c *Client) TriggerWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]any) error {
	event := github.CreateWorkflowDispatchEventRequest{
		Ref:    ref,
		Inputs: inputs,
	}
	var err error
	if id, convErr := strconv.ParseInt(workflowID, 10, 64); convErr == nil {
		_, err = c.gh.Actions.CreateWorkflowDispatchEventByID(ctx, owner, repo, id, event)
	} else {
		_, err = c.gh.Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, workflowID, event)
	}
	return err
}

func (c *Client) GetWorkflowStatus(ctx context.Context, owner, repo, workflowID string) (any, error) {
	runs, _, err := c.gh.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, workflowID, &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, err
	}
	if runs.GetTotalCount() == 0 || len(runs.WorkflowRuns) == 0 {
		return map[string]any{"workflow": workflowID, "status": "no runs"}, nil
	}
	latest := runs.WorkflowRuns[0]
	return map[string]any{
		"workflow":   workflowID,
		"run_id":     latest.GetID(),
		"status":     latest.GetStatus(),
		"conclusion": latest.GetConclusion(),
		"branch":     latest.GetHeadBranch(),
		"url":        latest.GetHTMLURL(),
	}, nil
}

func (c *Client) GetWorkflowLogs(ctx context.Context, owner, repo string, runID int64) (string, error) {
	url, _, err := c.gh.Actions.GetWorkflowRunLogs(ctx, owner, repo, runID, 1)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (c *Client) DisableWorkflow(ctx context.Context, owner, repo, workflowID string) error {
	if id, convErr := strconv.ParseInt(workflowID, 10, 64); convErr == nil {
		_, err := c.gh.Actions.DisableWorkflowByID(ctx, owner, repo, id)
		return err
	}
	_, err := c.gh.Actions.DisableWorkflowByFileName(ctx, owner, repo, workflowID)
	return err
}

func (c *Client) EnableWorkflow(ctx context.Context, owner, repo, workflowID string) error {
	if id, convErr := strconv.ParseInt(workflowID, 10, 64); convErr == nil {
		_, err := c.gh.Actions.EnableWorkflowByID(ctx, owner, repo, id)
		return err
	}
	_, err := c.gh.Actions.EnableWorkflowByFileName(ctx, owner, repo, workflowID)
	return err
}

// --- Deployments ---

func (c *Client) ListDeployments(ctx context.Context, owner, repo, environment string, opts provider.ListOptions) (any, error) {
	ghOpts := &github.DeploymentsListOptions{
		Environment: environment,
		ListOptions: listOpts(opts),
	}
	deployments, _, err := c.gh.Repositories.ListDeployments(ctx, owner, repo, ghOpts)
	return deployments, err
}

func (c *Client) CreateDeployment(ctx context.Context, owner, repo string, opts provider.DeploymentOptions) (any, error) {
	req := &github.DeploymentRequest{
		Ref:         github.Ptr(opts.Ref),
		Environment: github.Ptr(opts.Environment),
		AutoMerge:   github.Ptr(opts.AutoMerge),
	}
	if opts.Description != "" {
		req.Description = github.Ptr(opts.Description)
	}
	if opts.Task != "" {
		req.Task = github.Ptr(opts.Task)
	}
	deployment, _, err := c.gh.Repositories.CreateDeployment(ctx, owner, repo, req)
	return deployment, err
}

func (c *Client) UpdateDeploymentStatus(ctx context.Context, owner, repo string, deploymentID int64, state, description string) (any, error) {
	req := &github.DeploymentStatusRequest{
		State: github.Ptr(state),
	}
	if description != "" {
		req.Description = github.Ptr(description)
	}
	status, _, err := c.gh.Repositories.CreateDeploymentStatus(ctx, owner, repo, deploymentID, req)
	return status, err
}

func (c *Client) ListEnvironments(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	ghOpts := &github.EnvironmentListOptions{ListOptions: listOpts(opts)}
	environments, _, err := c.gh.Repositories.ListEnvironments(ctx, owner, repo, ghOpts)
	return environments, err
}

// RollbackDeployment creates a new deployment pointing at the ref of the
// given deployment. GitHub has no first-class rollback; redeploying the old
// ref is the documented approach.
func (c *Client) RollbackDeployment(ctx context.Context, owner, repo string, deploymentID int64) (any, error) {
	deployment, _, err := c.gh.Repositories.GetDeployment(ctx, owner, repo, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment %d: %w", deploymentID, err)
	}
	rollback, _, err := c.gh.Repositories.CreateDeployment(ctx, owner, repo, &github.DeploymentRequest{
		Ref:         github.Ptr(deployment.GetRef()),
		Environment: github.Ptr(deployment.GetEnvironment()),
		Description: github.Ptr(fmt.Sprintf("rollback to deployment %d", deploymentID)),
	})
	return rollback, err
}

func (c *Client) DeleteDeployment(ctx context.Context, owner, repo string, deploymentID int64) error {
	_, err := c.gh.Repositories.DeleteDeployment(ctx, owner, repo, deploymentID)
	return err
}

// --- Security ---

// RunSecurityScan aggregates the current alert counts across code scanning,
// secret scanning and Dependabot into one summary.
func (c *Client) RunSecurityScan(ctx context.Context, owner, repo string) (any, error) {
	summary := map[string]any{"owner": owner, "repo": repo}

	codeAlerts, _, err := c.gh.CodeScanning.ListAlertsForRepo(ctx, owner, repo, &github.AlertListOptions{State: "open"})
	if err == nil {
		summary["open_code_scanning_alerts"] = len(codeAlerts)
	} else {
		summary["code_scanning"] = "unavailable"
	}

	secretAlerts, _, err := c.gh.SecretScanning.ListAlertsForRepo(ctx, owner, repo, &github.SecretScanningAlertListOptions{State: "open"})
	if err == nil {
		summary["open_secret_scanning_alerts"] = len(secretAlerts)
	} else {
		summary["secret_scanning"] = "unavailable"
	}

	dependabotAlerts, _, err := c.gh.Dependabot.ListRepoAlerts(ctx, owner, repo, &github.ListAlertsOptions{State: github.Ptr("open")})
	if err == nil {
		summary["open_dependabot_alerts"] = len(dependabotAlerts)
	} else {
		summary["dependabot"] = "unavailable"
	}

	return summary, nil
}

func (c *Client) ListVulnerabilities(ctx context.Context, owner, repo string, opts provider.AlertListOptions) (any, error) {
	ghOpts := &github.ListAlertsOptions{
		ListCursorOptions: github.ListCursorOptions{PerPage: opts.PerPage},
	}
	if opts.State != "" {
		ghOpts.State = github.Ptr(opts.State)
	}
	if opts.Severity != "" {
		ghOpts.Severity = github.Ptr(opts.Severity)
	}
	alerts, _, err := c.gh.Dependabot.ListRepoAlerts(ctx, owner, repo, ghOpts)
	return alerts, err
}

func (c *Client) ManageAlert(ctx context.Context, owner, repo string, alertNumber int64, state string) (any, error) {
	alert, _, err := c.gh.CodeScanning.UpdateAlert(ctx, owner, repo, alertNumber, &github.CodeScanningAlertState{
		State: state,
	})
	return alert, err
}

// ManagePolicies reports whether the repository publishes a security policy.
func (c *Client) ManagePolicies(ctx context.Context, owner, repo string) (any, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, "SECURITY.md", nil)
	if err != nil {
		return map[string]any{"has_security_policy": false}, nil
	}
	return map[string]any{
		"has_security_policy": true,
		"policy_url":          file.GetHTMLURL(),
	}, nil
}

// CheckCompliance reports the presence of common governance files.
func (c *Client) CheckCompliance(ctx context.Context, owner, repo string) (any, error) {
	checks := map[string]bool{}
	for _, path := range []string{"LICENSE", "SECURITY.md", "CODE_OF_CONDUCT.md", "CONTRIBUTING.md"} {
		_, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
		checks[path] = err == nil
	}
	return map[string]any{"owner": owner, "repo": repo, "checks": checks}, nil
}

func (c *Client) AnalyzeDependencies(ctx context.Context, owner, repo string) (any, error) {
	sbom, _, err := c.gh.DependencyGraph.GetSBOM(ctx, owner, repo)
	return sbom, err
}

func (c *Client) ListAdvisories(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	// The advisories endpoint paginates with cursors, so only the page size
	// carries over.
	opt := &github.ListRepositorySecurityAdvisoriesOptions{
		ListCursorOptions: github.ListCursorOptions{PerPage: opts.PerPage},
	}
	advisories, _, err := c.gh.SecurityAdvisories.ListRepositorySecurityAdvisories(ctx, owner, repo, opt)
	return advisories, err
}

// --- Analytics ---

func (c *Client) GetTrafficStats(ctx context.Context, owner, repo string) (any, error) {
	views, _, err := c.gh.Repositories.ListTrafficViews(ctx, owner, repo, nil)
	if err != nil {
		return nil, err
	}
	clones, _, err := c.gh.Repositories.ListTrafficClones(ctx, owner, repo, nil)
	if err != nil {
		return nil, err
	}
	referrers, _, err := c.gh.Repositories.ListTrafficReferrers(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	paths, _, err := c.gh.Repositories.ListTrafficPaths(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"views":     views,
		"clones":    clones,
		"referrers": referrers,
		"paths":     paths,
	}, nil
}

func (c *Client) AnalyzeContributors(ctx context.Context, owner, repo string, opts provider.ListOptions) (any, error) {
	stats, _, err := c.gh.Repositories.ListContributorsStats(ctx, owner, repo)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return map[string]any{"status": "stats are being generated, retry shortly"}, nil
	}
	return stats, err
}

func (c *Client) GetActivityStats(ctx context.Context, owner, repo string) (any, error) {
	activity, _, err := c.gh.Repositories.ListCommitActivity(ctx, owner, repo)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return map[string]any{"status": "stats are being generated, retry shortly"}, nil
	}
	return activity, err
}

func (c *Client) GetPerformanceMetrics(ctx context.Context, owner, repo string) (any, error) {
	frequency, _, err := c.gh.Repositories.ListCodeFrequency(ctx, owner, repo)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return map[string]any{"status": "stats are being generated, retry shortly"}, nil
	}
	if err != nil {
		return nil, err
	}
	participation, _, err := c.gh.Repositories.ListParticipation(ctx, owner, repo)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return map[string]any{"code_frequency": frequency}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"code_frequency": frequency,
		"participation":  participation,
	}, nil
}

func (c *Client) GenerateReport(ctx context.Context, owner, repo string) (any, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	report := map[string]any{
		"repository": map[string]any{
			"full_name":   repository.GetFullName(),
			"stars":       repository.GetStargazersCount(),
			"forks":       repository.GetForksCount(),
			"open_issues": repository.GetOpenIssuesCount(),
			"watchers":    repository.GetSubscribersCount(),
			"language":    repository.GetLanguage(),
			"created_at":  repository.GetCreatedAt(),
			"pushed_at":   repository.GetPushedAt(),
		},
	}
	if contributors, err := c.AnalyzeContributors(ctx, owner, repo, provider.ListOptions{}); err == nil {
		report["contributors"] = contributors
	}
	if activity, err := c.GetActivityStats(ctx, owner, repo); err == nil {
		report["activity"] = activity
	}
	return report, nil
}

func (c *Client) AnalyzeTrends(ctx context.Context, owner, repo string) (any, error) {
	frequency, _, err := c.gh.Repositories.ListCodeFrequency(ctx, owner, repo)
	if _, accepted := err.(*github.AcceptedError); accepted {
		return map[string]any{"status": "stats are being generated, retry shortly"}, nil
	}
	if err != nil {
		return nil, err
	}

	var additions, deletions int
	for _, week := range frequency {
		additions += week.GetAdditions()
		deletions += week.GetDeletions()
	}
	return map[string]any{
		"weeks":           len(frequency),
		"total_additions": additions,
		"total_deletions": deletions,
		"code_frequency":  frequency,
	}, nil
}

func (c *Client) GetRepositoryInsights(ctx context.Context, owner, repo string) (any, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	participation, _, err := c.gh.Repositories.ListParticipation(ctx, owner, repo)
	if err != nil {
		if _, accepted := err.(*github.AcceptedError); !accepted {
			return nil, err
		}
	}
	insights := map[string]any{
		"full_name":      repository.GetFullName(),
		"default_branch": repository.GetDefaultBranch(),
		"topics":         repository.Topics,
		"stars":          repository.GetStargazersCount(),
		"forks":          repository.GetForksCount(),
		"open_issues":    repository.GetOpenIssuesCount(),
		"archived":       repository.GetArchived(),
	}
	if participation != nil {
		insights["participation"] = participation
	}
	return insights, nil
}

// --- Reviews ---

func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int64, opts provider.ListOptions) (any, error) {
	ghOpts := listOpts(opts)
	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, int(number), &ghOpts)
	return reviews, err
}

func (c *Client) CreateReview(ctx context.Context, owner, repo string, number int64, opts provider.ReviewOptions) (any, error) {
	req := &github.PullRequestReviewRequest{
		Event: github.Ptr(opts.Event),
	}
	if opts.Body != "" {
		req.Body = github.Ptr(opts.Body)
	}
	for _, comment := range opts.Comments {
		req.Comments = append(req.Comments, &github.DraftReviewComment{
			Path: github.Ptr(comment.Path),
			Line: github.Ptr(comment.Line),
			Body: github.Ptr(comment.Body),
		})
	}
	review, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, int(number), req)
	return review, err
}

func (c *Client) ListReviewComments(ctx context.Context, owner, repo string, number int64, opts provider.ListOptions) (any, error) {
	ghOpts := &github.PullRequestListCommentsOptions{ListOptions: listOpts(opts)}
	comments, _, err := c.gh.PullRequests.ListComments(ctx, owner, repo, int(number), ghOpts)
	return comments, err
}

// ApplySuggestion rewrites the target line range of a file and commits the
// result. The file is fetched, patched in memory and written back through the
// contents API.
func (c *Client) ApplySuggestion(ctx context.Context, owner, repo string, s provider.Suggestion) (any, error) {
	file, err := c.GetFile(ctx, owner, repo, s.Path, s.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.Path, err)
	}

	patched, err := replaceLines(file.Content, s.StartLine, s.EndLine, s.Content)
	if err != nil {
		return nil, err
	}

	result, _, err := c.gh.Repositories.UpdateFile(ctx, owner, repo, s.Path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(s.Message),
		Content: []byte(patched),
		SHA:     github.Ptr(file.SHA),
		Branch:  optionalPtr(s.Branch),
	})
	return result, err
}

func (c *Client) RequestReviewers(ctx context.Context, owner, repo string, number int64, reviewers []string) (any, error) {
	pr, _, err := c.gh.PullRequests.RequestReviewers(ctx, owner, repo, int(number), github.ReviewersRequest{
		Reviewers: reviewers,
	})
	return pr, err
}

// replaceLines replaces lines start..end (1-based, inclusive) with the
// replacement content.
func replaceLines(content string, start, end int, replacement string) (string, error) {
	lines := strings.Split(content, "\n")
	if start < 1 || end < start || end > len(lines) {
		return "", fmt.Errorf("line range %d-%d is out of bounds for a %d-line file", start, end, len(lines))
	}
	patched := make([]string, 0, len(lines))
	patched = append(patched, lines[:start-1]...)
	patched = append(patched, strings.Split(replacement, "\n")...)
	patched = append(patched, lines[end:]...)
	return strings.Join(patched, "\n"), nil
}

func optionalPtr(s string) *string {
	if s == "" {
		return nil
	}
	return github.Ptr(s)
}
