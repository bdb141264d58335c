package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListProjectsParams filters the projects visible to the API token.
type ListProjectsParams struct {
	Search     string
	Owned      bool
	Membership bool
	Visibility string
	OrderBy    string
	Sort       string
	PageParams
}

// ListProjects lists projects accessible by the API token.
func ListProjects(ctx context.Context, c *gitlab.Client, p ListProjectsParams) (*gitlab.Result, error) {
	if err := validate.OptionalEnum("visibility", p.Visibility); err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("sort", p.Sort); err != nil {
		return nil, err
	}

	q := url.Values{}
	if p.OrderBy == "" {
		p.OrderBy = "created_at"
	}
	if p.Sort == "" {
		p.Sort = "desc"
	}
	q.Set("order_by", p.OrderBy)
	q.Set("sort", p.Sort)
	setIfPresent(q, "search", p.Search)
	setIfPresent(q, "visibility", p.Visibility)
	setBool(q, "owned", p.Owned)
	setBool(q, "membership", p.Membership)
	p.apply(q)

	return c.Get(ctx, "/projects", q)
}

// GetProject fetches project details by ID or path.
func GetProject(ctx context.Context, c *gitlab.Client, projectID string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id, nil)
}

// CreateProjectParams is the input for project creation.
type CreateProjectParams struct {
	Name                 string
	Description          string
	Visibility           string
	InitializeWithReadme bool
	NamespaceID          int
}

// CreateProject creates a new project.
func CreateProject(ctx context.Context, c *gitlab.Client, p CreateProjectParams) (*gitlab.Result, error) {
	if p.Visibility == "" {
		p.Visibility = "private"
	}

	input := validate.CreateProjectInput{
		Name:                 p.Name,
		Description:          p.Description,
		Visibility:           p.Visibility,
		InitializeWithReadme: p.InitializeWithReadme,
		NamespaceID:          p.NamespaceID,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return c.Post(ctx, "/projects", input, nil)
}

// ListBranchesParams filters repository branches.
type ListBranchesParams struct {
	ProjectID string
	Search    string
	PageParams
}

// ListBranches lists repository branches for a project.
func ListBranches(ctx context.Context, c *gitlab.Client, p ListBranchesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "search", p.Search)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/repository/branches", q)
}

// GetBranch fetches a single repository branch.
func GetBranch(ctx context.Context, c *gitlab.Client, projectID, branch string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Field("branch", branch); err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/repository/branches/"+url.PathEscape(branch), nil)
}

// ListCommitsParams filters repository commits.
type ListCommitsParams struct {
	ProjectID string
	RefName   string
	Since     string
	Until     string
	Path      string
	PageParams
}

// ListCommits lists repository commits for a project.
func ListCommits(ctx context.Context, c *gitlab.Client, p ListCommitsParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "ref_name", p.RefName)
	setIfPresent(q, "since", p.Since)
	setIfPresent(q, "until", p.Until)
	setIfPresent(q, "path", p.Path)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/repository/commits", q)
}

// ListTreeParams filters repository tree listings.
type ListTreeParams struct {
	ProjectID string
	Path      string
	Ref       string
	Recursive bool
	PageParams
}

// ListTree lists repository files and directories.
func ListTree(ctx context.Context, c *gitlab.Client, p ListTreeParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "path", p.Path)
	setIfPresent(q, "ref", p.Ref)
	setBool(q, "recursive", p.Recursive)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/repository/tree", q)
}

// GetFile fetches file metadata and base64 content from a repository.
func GetFile(ctx context.Context, c *gitlab.Client, projectID, filePath, ref string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	encodedPath, err := validate.FilePath(filePath)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		ref = "HEAD"
	}

	q := url.Values{}
	q.Set("ref", ref)

	return c.Get(ctx, "/projects/"+id+"/repository/files/"+encodedPath, q)
}

// CreateFile commits a new file to a repository branch.
func CreateFile(ctx context.Context, c *gitlab.Client, projectID, filePath string, input validate.WriteFileInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	encodedPath, err := validate.FilePath(filePath)
	if err != nil {
		return nil, err
	}
	if input.Encoding == "" {
		input.Encoding = "text"
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/repository/files/"+encodedPath, input, nil)
}

// UpdateFile commits new content to an existing repository file.
func UpdateFile(ctx context.Context, c *gitlab.Client, projectID, filePath string, input validate.WriteFileInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	encodedPath, err := validate.FilePath(filePath)
	if err != nil {
		return nil, err
	}
	if input.Encoding == "" {
		input.Encoding = "text"
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Put(ctx, "/projects/"+id+"/repository/files/"+encodedPath, input)
}
