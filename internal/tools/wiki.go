package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListWikiPagesParams filters a project's wiki pages.
type ListWikiPagesParams struct {
	ProjectID   string
	WithContent bool
	PageParams
}

// ListWikiPages lists the wiki pages of a project.
func ListWikiPages(ctx context.Context, c *gitlab.Client, p ListWikiPagesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	setBool(q, "with_content", p.WithContent)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/wikis", q)
}

// GetWikiPage fetches a single wiki page by its URL slug.
func GetWikiPage(ctx context.Context, c *gitlab.Client, projectID, slug string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	encodedSlug, err := validate.WikiSlug(slug)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/wikis/"+encodedSlug, nil)
}

// CreateWikiPage creates a new wiki page. Format defaults to markdown.
func CreateWikiPage(ctx context.Context, c *gitlab.Client, projectID string, input validate.CreateWikiPageInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if input.Format == "" {
		input.Format = "markdown"
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/wikis", input, nil)
}
