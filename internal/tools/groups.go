package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListGroupsParams filters the groups visible to the API token.
type ListGroupsParams struct {
	Search       string
	Owned        bool
	TopLevelOnly bool
	OrderBy      string
	Sort         string
	PageParams
}

// ListGroups lists groups accessible by the API token.
func ListGroups(ctx context.Context, c *gitlab.Client, p ListGroupsParams) (*gitlab.Result, error) {
	if err := validate.OptionalEnum("sort", p.Sort); err != nil {
		return nil, err
	}

	q := url.Values{}
	if p.OrderBy == "" {
		p.OrderBy = "name"
	}
	if p.Sort == "" {
		p.Sort = "asc"
	}
	q.Set("order_by", p.OrderBy)
	q.Set("sort", p.Sort)
	setIfPresent(q, "search", p.Search)
	setBool(q, "owned", p.Owned)
	setBool(q, "top_level_only", p.TopLevelOnly)
	p.apply(q)

	return c.Get(ctx, "/groups", q)
}

// GetGroup fetches group details by ID or path.
func GetGroup(ctx context.Context, c *gitlab.Client, groupID string, withProjects bool) (*gitlab.Result, error) {
	id, err := validate.GroupID(groupID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if !withProjects {
		q.Set("with_projects", "false")
	}

	return c.Get(ctx, "/groups/"+id, q)
}

// ListGroupProjectsParams filters projects within a group.
type ListGroupProjectsParams struct {
	GroupID          string
	Search           string
	Visibility       string
	IncludeSubgroups bool
	OrderBy          string
	Sort             string
	PageParams
}

// ListGroupProjects lists projects within a group.
func ListGroupProjects(ctx context.Context, c *gitlab.Client, p ListGroupProjectsParams) (*gitlab.Result, error) {
	id, err := validate.GroupID(p.GroupID)
	if err != nil {
		return nil, err
	}
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
	setBool(q, "include_subgroups", p.IncludeSubgroups)
	p.apply(q)

	return c.Get(ctx, "/groups/"+id+"/projects", q)
}
