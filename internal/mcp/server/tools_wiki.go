// Copyright 2026 CrunchTools
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/tools"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// registerWikiTools registers project wiki tools.
func (s *Server) registerWikiTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_wiki_pages",
		Description: "List the wiki pages of a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":   stringProp("Project numeric ID or URL-safe path"),
				"with_content": boolProp("Include page content in the response"),
				"page":         pageProp,
				"per_page":     perPageProp,
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListWikiPages(ctx, s.client, tools.ListWikiPagesParams{
			ProjectID:   projectID,
			WithContent: request.GetBool("with_content", false),
			PageParams:  tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_wiki_page",
		Description: "Get a wiki page, including its content, by URL slug.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"slug":       stringProp("URL slug of the wiki page (e.g. home)"),
			},
			Required: []string{"project_id", "slug"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		slug, err := request.RequireString("slug")
		if err != nil {
			return nil, missingArg("slug")
		}
		return tools.GetWikiPage(ctx, s.client, projectID, slug)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_wiki_page",
		Description: "Create a new wiki page in a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"title":      stringProp("Page title"),
				"content":    stringProp("Page content"),
				"format":     stringProp("Content format: markdown, rdoc, asciidoc, or org (default: markdown)"),
			},
			Required: []string{"project_id", "title", "content"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		var input validate.CreateWikiPageInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id"), &input); err != nil {
			return nil, err
		}
		return tools.CreateWikiPage(ctx, s.client, projectID, input)
	})
}
