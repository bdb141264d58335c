package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListMergeRequestsParams filters a project's merge requests.
type ListMergeRequestsParams struct {
	ProjectID string
	State     string
	OrderBy   string
	Sort      string
	Labels    string
	Milestone string
	Search    string
	PageParams
}

// ListMergeRequests lists merge requests for a project.
func ListMergeRequests(ctx context.Context, c *gitlab.Client, p ListMergeRequestsParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.State == "" {
		p.State = "opened"
	}
	if err := validate.Enum("mr_state", p.State); err != nil {
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
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/merge_requests", q)
}

// GetMergeRequest fetches a single merge request by its IID.
func GetMergeRequest(ctx context.Context, c *gitlab.Client, projectID string, mrIID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/merge_requests/"+strconv.Itoa(mrIID), nil)
}

// CreateMergeRequest creates a new merge request from a validated input.
func CreateMergeRequest(ctx context.Context, c *gitlab.Client, projectID string, input validate.CreateMergeRequestInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/merge_requests", input, nil)
}

// UpdateMergeRequest updates an existing merge request from a validated input.
func UpdateMergeRequest(ctx context.Context, c *gitlab.Client, projectID string, mrIID int, input validate.UpdateMergeRequestInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Put(ctx, "/projects/"+id+"/merge_requests/"+strconv.Itoa(mrIID), input)
}

// ListMergeRequestNotesParams filters the notes of one merge request.
type ListMergeRequestNotesParams struct {
	ProjectID       string
	MergeRequestIID int
	OrderBy         string
	Sort            string
	PageParams
}

// ListMergeRequestNotes lists notes (comments) on a merge request.
func ListMergeRequestNotes(ctx context.Context, c *gitlab.Client, p ListMergeRequestNotesParams) (*gitlab.Result, error) {
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

	return c.Get(ctx, "/projects/"+id+"/merge_requests/"+strconv.Itoa(p.MergeRequestIID)+"/notes", q)
}

// CreateMergeRequestNote creates a note (comment) on a merge request.
func CreateMergeRequestNote(ctx context.Context, c *gitlab.Client, projectID string, mrIID int, body string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Field("body", body); err != nil {
		return nil, err
	}
	payload := map[string]string{"body": body}
	return c.Post(ctx, "/projects/"+id+"/merge_requests/"+strconv.Itoa(mrIID)+"/notes", payload, nil)
}

// GetMergeRequestChanges fetches the file diffs for a merge request.
func GetMergeRequestChanges(ctx context.Context, c *gitlab.Client, projectID string, mrIID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/merge_requests/"+strconv.Itoa(mrIID)+"/changes", nil)
}
