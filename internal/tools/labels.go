package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListLabelsParams filters a project's labels.
type ListLabelsParams struct {
	ProjectID             string
	Search                string
	WithCounts            bool
	IncludeAncestorGroups bool
	PageParams
}

// ListLabels lists the labels defined in a project.
func ListLabels(ctx context.Context, c *gitlab.Client, p ListLabelsParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.OptionalField("search", p.Search); err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "search", p.Search)
	setBool(q, "with_counts", p.WithCounts)
	setBool(q, "include_ancestor_groups", p.IncludeAncestorGroups)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/labels", q)
}
