package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// SearchParams is the input for a global search across the instance.
type SearchParams struct {
	Scope  string
	Search string
	PageParams
}

// Search performs a global search across projects, issues, and more.
func Search(ctx context.Context, c *gitlab.Client, p SearchParams) (*gitlab.Result, error) {
	if err := validate.Enum("search_scope", p.Scope); err != nil {
		return nil, err
	}
	if err := validate.Field("search", p.Search); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("scope", p.Scope)
	q.Set("search", p.Search)
	p.apply(q)

	return c.Get(ctx, "/search", q)
}

// SearchProjectParams is the input for a search scoped to one project.
type SearchProjectParams struct {
	ProjectID string
	Scope     string
	Search    string
	Ref       string
	PageParams
}

// SearchProject searches within a single project. Blob and commit scopes
// accept an optional ref to search a specific branch or tag.
func SearchProject(ctx context.Context, c *gitlab.Client, p SearchProjectParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Enum("project_search_scope", p.Scope); err != nil {
		return nil, err
	}
	if err := validate.Field("search", p.Search); err != nil {
		return nil, err
	}
	if err := validate.OptionalField("ref", p.Ref); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("scope", p.Scope)
	q.Set("search", p.Search)
	setIfPresent(q, "ref", p.Ref)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/search", q)
}
