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
)

// registerSearchTools registers instance-wide and project-scoped search tools.
func (s *Server) registerSearchTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_search",
		Description: "Search across the GitLab instance. Scope selects what to search: projects, issues, merge_requests, milestones, users, and more.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scope":    stringProp("Search scope: projects, issues, merge_requests, milestones, snippet_titles, users, blobs, commits, notes, or wiki_blobs"),
				"search":   stringProp("Search query"),
				"page":     pageProp,
				"per_page": perPageProp,
			},
			Required: []string{"scope", "search"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		scope, err := request.RequireString("scope")
		if err != nil {
			return nil, missingArg("scope")
		}
		search, err := request.RequireString("search")
		if err != nil {
			return nil, missingArg("search")
		}
		page, perPage := pageArgs(request)
		return tools.Search(ctx, s.client, tools.SearchParams{
			Scope:      scope,
			Search:     search,
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_search_project",
		Description: "Search within a single project. Blob and commit scopes accept an optional ref.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"scope":      stringProp("Search scope: issues, merge_requests, milestones, blobs, commits, notes, or wiki_blobs"),
				"search":     stringProp("Search query"),
				"ref":        stringProp("Branch or tag to search (blobs and commits only)"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
			Required: []string{"project_id", "scope", "search"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		scope, err := request.RequireString("scope")
		if err != nil {
			return nil, missingArg("scope")
		}
		search, err := request.RequireString("search")
		if err != nil {
			return nil, missingArg("search")
		}
		page, perPage := pageArgs(request)
		return tools.SearchProject(ctx, s.client, tools.SearchProjectParams{
			ProjectID:  projectID,
			Scope:      scope,
			Search:     search,
			Ref:        request.GetString("ref", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})
}
