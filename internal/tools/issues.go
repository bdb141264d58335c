package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListIssuesParams filters a project's issues.
type ListIssuesParams struct {
	ProjectID  string
	State      string
	OrderBy    string
	Sort       string
	Labels     string
	Milestone  string
	Search     string
	AssigneeID int
	PageParams
}

// ListIssues lists issues for a project.
func ListIssues(ctx context.Context, c *gitlab.Client, p ListIssuesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.State == "" {
		p.State = "opened"
	}
	if err := validate.Enum("issue_state", p.State); err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("sort", p.Sort); err != nil {
		return nil, err
	}
	if err := validate.OptionalField("labels", p.Labels); err != nil {
		return nil, err
	}

	q := url.Values{}
	if p.OrderBy == "" {
		p.OrderBy = "created_at"
	}
	if p.Sort == "" {
		p.Sort = "desc"
	}
	q.Set("state", p.State)
	q.Set("order_by", p.OrderBy)
	q.Set("sort", p.Sort)
	setIfPresent(q, "labels", p.Labels)
	setIfPresent(q, "milestone", p.Milestone)
	setIfPresent(q, "search", p.Search)
	if p.AssigneeID > 0 {
		q.Set("assignee_id", strconv.Itoa(p.AssigneeID))
	}
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/issues", q)
}

// GetIssue fetches a single issue by its IID.
func GetIssue(ctx context.Context, c *gitlab.Client, projectID string, issueIID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/issues/"+strconv.Itoa(issueIID), nil)
}

// CreateIssue creates a new issue from a validated input.
func CreateIssue(ctx context.Context, c *gitlab.Client, projectID string, input validate.CreateIssueInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/issues", input, nil)
}

// UpdateIssue updates an existing issue from a validated input.
func UpdateIssue(ctx context.Context, c *gitlab.Client, projectID string, issueIID int, input validate.UpdateIssueInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Put(ctx, "/projects/"+id+"/issues/"+strconv.Itoa(issueIID), input)
}

// ListIssueNotesParams filters the notes of one issue.
type ListIssueNotesParams struct {
	ProjectID string
	IssueIID  int
	OrderBy   string
	Sort      string
	PageParams
}

// ListIssueNotes lists notes (comments) on an issue.
func ListIssueNotes(ctx context.Context, c *gitlab.Client, p ListIssueNotesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
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
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/issues/"+strconv.Itoa(p.IssueIID)+"/notes", q)
}

// CreateIssueNote creates a note (comment) on an issue.
func CreateIssueNote(ctx context.Context, c *gitlab.Client, projectID string, issueIID int, body string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Field("body", body); err != nil {
		return nil, err
	}
	payload := map[string]string{"body": body}
	return c.Post(ctx, "/projects/"+id+"/issues/"+strconv.Itoa(issueIID)+"/notes", payload, nil)
}
