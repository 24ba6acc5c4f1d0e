// Package provider defines the VCS backend abstraction shared by all tools.
//
// A Provider is a configured client for one backend (GitHub or Gitea). The
// base interface is deliberately tiny; everything else is an optional
// capability interface that a provider may or may not implement. Tools probe
// capabilities with a type assertion and report missing ones through
// NotSupportedError rather than panicking or returning raw SDK errors.
package provider

import "context"

// Provider is the base contract every backend implements.
type Provider interface {
	// Name returns the registry name of the provider, e.g. "github" or "gitea".
	Name() string

	// CurrentUser returns the login of the authenticated user.
	CurrentUser(ctx context.Context) (string, error)
}

// ListOptions carries standard pagination for list operations.
// Page is 1-based; PerPage is clamped by the tool schemas to 1-100.
type ListOptions struct {
	Page    int
	PerPage int
}

// FileContent is the normalized form of a repository file returned by GetFile.
// Tools rely on SHA for the update round-trip, so Files implementations must
// populate it.
type FileContent struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	HTMLURL  string `json:"html_url,omitempty"`
}

// FileWriteOptions carries the mutable parts of a file create/update/delete.
type FileWriteOptions struct {
	Content string
	Message string
	Branch  string
	SHA     string
}

// Files is the file-management capability.
type Files interface {
	GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts FileWriteOptions) (any, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts FileWriteOptions) (any, error)
	DeleteFile(ctx context.Context, owner, repo, path string, opts FileWriteOptions) (any, error)
	ListFiles(ctx context.Context, owner, repo, dir, ref string) (any, error)
}

// IssueOptions carries the mutable parts of an issue create/update.
type IssueOptions struct {
	Title     string
	Body      string
	State     string
	Labels    []string
	Assignees []string
}

// IssueListOptions filters issue listings.
type IssueListOptions struct {
	State  string
	Labels []string
	ListOptions
}

// Issues is the issue-tracking capability.
type Issues interface {
	CreateIssue(ctx context.Context, owner, repo string, opts IssueOptions) (any, error)
	ListIssues(ctx context.Context, owner, repo string, opts IssueListOptions) (any, error)
	GetIssue(ctx context.Context, owner, repo string, number int64) (any, error)
	UpdateIssue(ctx context.Context, owner, repo string, number int64, opts IssueOptions) (any, error)
	CommentIssue(ctx context.Context, owner, repo string, number int64, body string) (any, error)
}

// ReleaseOptions carries the mutable parts of a release create/update.
type ReleaseOptions struct {
	TagName         string
	Name            string
	Body            string
	TargetCommitish string
	Draft           bool
	Prerelease      bool
}

// Releases is the release-management capability.
type Releases interface {
	CreateRelease(ctx context.Context, owner, repo string, opts ReleaseOptions) (any, error)
	ListReleases(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	GetRelease(ctx context.Context, owner, repo string, id int64) (any, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (any, error)
	UpdateRelease(ctx context.Context, owner, repo string, id int64, opts ReleaseOptions) (any, error)
	DeleteRelease(ctx context.Context, owner, repo string, id int64) error
}

// RepositoryOptions carries the mutable parts of a repository create/update.
type RepositoryOptions struct {
	Name          string
	Description   string
	Private       bool
	AutoInit      bool
	DefaultBranch string
}

// Repositories is the repository-management capability.
type Repositories interface {
	CreateRepository(ctx context.Context, opts RepositoryOptions) (any, error)
	ListRepositories(ctx context.Context, opts ListOptions) (any, error)
	GetRepository(ctx context.Context, owner, repo string) (any, error)
	UpdateRepository(ctx context.Context, owner, repo string, opts RepositoryOptions) (any, error)
	DeleteRepository(ctx context.Context, owner, repo string) error
	ForkRepository(ctx context.Context, owner, repo, organization string) (any, error)
	SearchRepositories(ctx context.Context, query string, opts ListOptions) (any, error)
	ArchiveRepository(ctx context.Context, owner, repo string) (any, error)
	TransferRepository(ctx context.Context, owner, repo, newOwner string) (any, error)
}

// RepositoryTemplates is the optional template-instantiation capability.
type RepositoryTemplates interface {
	CreateFromTemplate(ctx context.Context, templateOwner, templateRepo, owner, name string, private bool) (any, error)
}

// RepositoryMirrors is the optional mirroring capability.
type RepositoryMirrors interface {
	MirrorRepository(ctx context.Context, cloneURL, owner, name string) (any, error)
}

// WebhookOptions carries the mutable parts of a webhook create/update.
type WebhookOptions struct {
	URL         string
	ContentType string
	Secret      string
	Events      []string
	Active      *bool
}

// Webhooks is the webhook-management capability.
type Webhooks interface {
	CreateWebhook(ctx context.Context, owner, repo string, opts WebhookOptions) (any, error)
	ListWebhooks(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	GetWebhook(ctx context.Context, owner, repo string, id int64) (any, error)
	UpdateWebhook(ctx context.Context, owner, repo string, id int64, opts WebhookOptions) (any, error)
	DeleteWebhook(ctx context.Context, owner, repo string, id int64) error
	PingWebhook(ctx context.Context, owner, repo string, id int64) error
}

// RunListOptions filters workflow-run listings.
type RunListOptions struct {
	WorkflowID string
	Branch     string
	Event      string
	Status     string
	Actor      string
	ListOptions
}

// WorkflowRuns is the CI run management capability.
type WorkflowRuns interface {
	ListWorkflowRuns(ctx context.Context, owner, repo string, opts RunListOptions) (any, error)
	CancelWorkflowRun(ctx context.Context, owner, repo string, runID int64) error
	RerunWorkflow(ctx context.Context, owner, repo string, runID int64) error
	ListArtifacts(ctx context.Context, owner, repo string, runID int64, opts ListOptions) (any, error)
	ListSecrets(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	ListJobs(ctx context.Context, owner, repo string, runID int64, opts ListOptions) (any, error)
	DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) (string, error)
}

// Workflows is the workflow definition management capability.
type Workflows interface {
	ListWorkflows(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	CreateWorkflow(ctx context.Context, owner, repo, fileName, content, message string) (any, error)
	TriggerWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]any) error
	GetWorkflowStatus(ctx context.Context, owner, repo, workflowID string) (any, error)
	GetWorkflowLogs(ctx context.Context, owner, repo string, runID int64) (string, error)
	DisableWorkflow(ctx context.Context, owner, repo, workflowID string) error
	EnableWorkflow(ctx context.Context, owner, repo, workflowID string) error
}

// DeploymentOptions carries the mutable parts of a deployment create.
type DeploymentOptions struct {
	Ref         string
	Environment string
	Description string
	Task        string
	AutoMerge   bool
}

// Deployments is the deployment-management capability.
type Deployments interface {
	ListDeployments(ctx context.Context, owner, repo, environment string, opts ListOptions) (any, error)
	CreateDeployment(ctx context.Context, owner, repo string, opts DeploymentOptions) (any, error)
	UpdateDeploymentStatus(ctx context.Context, owner, repo string, deploymentID int64, state, description string) (any, error)
	ListEnvironments(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	RollbackDeployment(ctx context.Context, owner, repo string, deploymentID int64) (any, error)
	DeleteDeployment(ctx context.Context, owner, repo string, deploymentID int64) error
}

// AlertListOptions filters security alert listings.
type AlertListOptions struct {
	State    string
	Severity string
	ListOptions
}

// Security is the security-insights capability.
type Security interface {
	RunSecurityScan(ctx context.Context, owner, repo string) (any, error)
	ListVulnerabilities(ctx context.Context, owner, repo string, opts AlertListOptions) (any, error)
	ManageAlert(ctx context.Context, owner, repo string, alertNumber int64, state string) (any, error)
	ManagePolicies(ctx context.Context, owner, repo string) (any, error)
	CheckCompliance(ctx context.Context, owner, repo string) (any, error)
	AnalyzeDependencies(ctx context.Context, owner, repo string) (any, error)
	ListAdvisories(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
}

// Analytics is the repository-insights capability.
type Analytics interface {
	GetTrafficStats(ctx context.Context, owner, repo string) (any, error)
	AnalyzeContributors(ctx context.Context, owner, repo string, opts ListOptions) (any, error)
	GetActivityStats(ctx context.Context, owner, repo string) (any, error)
	GetPerformanceMetrics(ctx context.Context, owner, repo string) (any, error)
	GenerateReport(ctx context.Context, owner, repo string) (any, error)
	AnalyzeTrends(ctx context.Context, owner, repo string) (any, error)
	GetRepositoryInsights(ctx context.Context, owner, repo string) (any, error)
}

// ReviewComment is one inline comment attached to a review.
type ReviewComment struct {
	Path string
	Line int
	Body string
}

// ReviewOptions carries the mutable parts of a review create.
type ReviewOptions struct {
	Body     string
	Event    string
	Comments []ReviewComment
}

// Suggestion is a single code suggestion to apply as a commit.
type Suggestion struct {
	Path      string
	StartLine int
	EndLine   int
	Content   string
	Branch    string
	Message   string
}

// Reviews is the code-review capability.
type Reviews interface {
	ListReviews(ctx context.Context, owner, repo string, number int64, opts ListOptions) (any, error)
	CreateReview(ctx context.Context, owner, repo string, number int64, opts ReviewOptions) (any, error)
	ListReviewComments(ctx context.Context, owner, repo string, number int64, opts ListOptions) (any, error)
	ApplySuggestion(ctx context.Context, owner, repo string, s Suggestion) (any, error)
	RequestReviewers(ctx context.Context, owner, repo string, number int64, reviewers []string) (any, error)
}
