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

// registerMiscTools registers release, label, milestone, and user tools.
func (s *Server) registerMiscTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_releases",
		Description: "List releases for a project, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"sort":       stringProp("Sort direction: asc or desc (default: desc)"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListReleases(ctx, s.client, tools.ListReleasesParams{
			ProjectID:  projectID,
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_release",
		Description: "Get a release by its tag name.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"tag_name":   stringProp("Release tag name"),
			},
			Required: []string{"project_id", "tag_name"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		tagName, err := request.RequireString("tag_name")
		if err != nil {
			return nil, missingArg("tag_name")
		}
		return tools.GetRelease(ctx, s.client, projectID, tagName)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_labels",
		Description: "List the labels defined in a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":              stringProp("Project numeric ID or URL-safe path"),
				"search":                  stringProp("Filter labels by keyword"),
				"with_counts":             boolProp("Include issue and merge request counts"),
				"include_ancestor_groups": boolProp("Include labels inherited from ancestor groups"),
				"page":                    pageProp,
				"per_page":                perPageProp,
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListLabels(ctx, s.client, tools.ListLabelsParams{
			ProjectID:             projectID,
			Search:                request.GetString("search", ""),
			WithCounts:            request.GetBool("with_counts", false),
			IncludeAncestorGroups: request.GetBool("include_ancestor_groups", false),
			PageParams:            tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_milestones",
		Description: "List the milestones of a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"state":      stringProp("Milestone state: active or closed"),
				"search":     stringProp("Filter milestones by title"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListMilestones(ctx, s.client, tools.ListMilestonesParams{
			ProjectID:  projectID,
			State:      request.GetString("state", ""),
			Search:     request.GetString("search", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_milestone",
		Description: "Get details of a specific milestone.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":   stringProp("Project numeric ID or URL-safe path"),
				"milestone_id": intProp("Milestone ID"),
			},
			Required: []string{"project_id", "milestone_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		milestoneID, err := request.RequireInt("milestone_id")
		if err != nil {
			return nil, missingArg("milestone_id")
		}
		return tools.GetMilestone(ctx, s.client, projectID, milestoneID)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_current_user",
		Description: "Get the user that owns the configured API token. Useful for verifying credentials.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		return tools.GetCurrentUser(ctx, s.client)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_user",
		Description: "Get a user by numeric ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": intProp("User ID"),
			},
			Required: []string{"user_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		userID, err := request.RequireInt("user_id")
		if err != nil {
			return nil, missingArg("user_id")
		}
		return tools.GetUser(ctx, s.client, userID)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_users",
		Description: "List users, optionally narrowed by search or exact username.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search":   stringProp("Search by name, username, or email"),
				"username": stringProp("Exact username match"),
				"active":   boolProp("Limit to active users"),
				"page":     pageProp,
				"per_page": perPageProp,
			},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		page, perPage := pageArgs(request)
		return tools.ListUsers(ctx, s.client, tools.ListUsersParams{
			Search:     request.GetString("search", ""),
			Username:   request.GetString("username", ""),
			Active:     request.GetBool("active", false),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})
}
