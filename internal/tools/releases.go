package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListReleasesParams filters a project's releases.
type ListReleasesParams struct {
	ProjectID string
	Sort      string
	PageParams
}

// ListReleases lists releases for a project, newest first by default.
func ListReleases(ctx context.Context, c *gitlab.Client, p ListReleasesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("sort", p.Sort); err != nil {
		return nil, err
	}

	q := url.Values{}
	if p.Sort == "" {
		p.Sort = "desc"
	}
	q.Set("order_by", "released_at")
	q.Set("sort", p.Sort)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/releases", q)
}

// GetRelease fetches a single release by its tag name.
func GetRelease(ctx context.Context, c *gitlab.Client, projectID, tagName string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Field("tag_name", tagName); err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/releases/"+url.PathEscape(tagName), nil)
}
