package tools

import (
	"context"
	"net/url"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListSnippets lists the snippets of a project.
func ListSnippets(ctx context.Context, c *gitlab.Client, projectID string, page PageParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	page.apply(q)

	return c.Get(ctx, "/projects/"+id+"/snippets", q)
}

// CreateSnippet creates a project snippet. The API expects the snippet file
// nested under a "files" array, so the flat input is remapped here.
func CreateSnippet(ctx context.Context, c *gitlab.Client, projectID string, input validate.CreateSnippetInput) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if input.Visibility == "" {
		input.Visibility = "private"
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"title":      input.Title,
		"files":      []map[string]string{{"file_path": input.FileName, "content": input.Content}},
		"visibility": input.Visibility,
	}
	if input.Description != "" {
		payload["description"] = input.Description
	}

	return c.Post(ctx, "/projects/"+id+"/snippets", payload, nil)
}
