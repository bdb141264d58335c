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

// registerGroupTools registers group tools.
func (s *Server) registerGroupTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_groups",
		Description: "List GitLab groups accessible by the API token.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search":         stringProp("Search for groups by name"),
				"owned":          boolProp("Limit to groups explicitly owned by the current user"),
				"top_level_only": boolProp("Limit to top-level groups, excluding subgroups"),
				"order_by":       stringProp("Order results by field (default: name)"),
				"sort":           stringProp("Sort direction: asc or desc (default: asc)"),
				"page":           pageProp,
				"per_page":       perPageProp,
			},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		page, perPage := pageArgs(request)
		return tools.ListGroups(ctx, s.client, tools.ListGroupsParams{
			Search:       request.GetString("search", ""),
			Owned:        request.GetBool("owned", false),
			TopLevelOnly: request.GetBool("top_level_only", false),
			OrderBy:      request.GetString("order_by", ""),
			Sort:         request.GetString("sort", ""),
			PageParams:   tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_group",
		Description: "Get details of a specific GitLab group by numeric ID or path (e.g. 'group/subgroup').",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"group_id":      stringProp("Group numeric ID or URL-safe path like 'group/subgroup'"),
				"with_projects": boolProp("Include the group's projects in the response"),
			},
			Required: []string{"group_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		groupID, err := request.RequireString("group_id")
		if err != nil {
			return nil, missingArg("group_id")
		}
		return tools.GetGroup(ctx, s.client, groupID, request.GetBool("with_projects", false))
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_group_projects",
		Description: "List the projects within a group, optionally including subgroups.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"group_id":          stringProp("Group numeric ID or URL-safe path"),
				"search":            stringProp("Search for projects by name"),
				"visibility":        stringProp("Filter by visibility: public, internal, or private"),
				"include_subgroups": boolProp("Include projects from subgroups"),
				"order_by":          stringProp("Order results by field (default: created_at)"),
				"sort":              stringProp("Sort direction: asc or desc (default: desc)"),
				"page":              pageProp,
				"per_page":          perPageProp,
			},
			Required: []string{"group_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		groupID, err := request.RequireString("group_id")
		if err != nil {
			return nil, missingArg("group_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListGroupProjects(ctx, s.client, tools.ListGroupProjectsParams{
			GroupID:          groupID,
			Search:           request.GetString("search", ""),
			Visibility:       request.GetString("visibility", ""),
			IncludeSubgroups: request.GetBool("include_subgroups", false),
			OrderBy:          request.GetString("order_by", ""),
			Sort:             request.GetString("sort", ""),
			PageParams:       tools.PageParams{Page: page, PerPage: perPage},
		})
	})
}
