package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListMilestonesParams filters a project's milestones.
type ListMilestonesParams struct {
	ProjectID string
	State     string
	Search    string
	PageParams
}

// ListMilestones lists the milestones of a project.
func ListMilestones(ctx context.Context, c *gitlab.Client, p ListMilestonesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("milestone_state", p.State); err != nil {
		return nil, err
	}
	if err := validate.OptionalField("search", p.Search); err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "state", p.State)
	setIfPresent(q, "search", p.Search)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/milestones", q)
}

// GetMilestone fetches a single milestone by ID.
func GetMilestone(ctx context.Context, c *gitlab.Client, projectID string, milestoneID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/milestones/"+strconv.Itoa(milestoneID), nil)
}
