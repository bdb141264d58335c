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

// registerMergeRequestTools registers merge request tools.
func (s *Server) registerMergeRequestTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_merge_requests",
		Description: "List merge requests for a project. Defaults to open MRs, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"state":      stringProp("MR state: opened, closed, merged, or all (default: opened)"),
				"labels":     stringProp("Comma-separated label names"),
				"milestone":  stringProp("Milestone title"),
				"search":     stringProp("Search in title and description"),
				"order_by":   stringProp("Order results by field (default: created_at)"),
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
		return tools.ListMergeRequests(ctx, s.client, tools.ListMergeRequestsParams{
			ProjectID:  projectID,
			State:      request.GetString("state", ""),
			Labels:     request.GetString("labels", ""),
			Milestone:  request.GetString("milestone", ""),
			Search:     request.GetString("search", ""),
			OrderBy:    request.GetString("order_by", ""),
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_merge_request",
		Description: "Get details of a specific merge request by its project-scoped IID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"mr_iid":     intProp("Merge request IID (project-scoped number)"),
			},
			Required: []string{"project_id", "mr_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		mrIID, err := request.RequireInt("mr_iid")
		if err != nil {
			return nil, missingArg("mr_iid")
		}
		return tools.GetMergeRequest(ctx, s.client, projectID, mrIID)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_merge_request",
		Description: "Create a new merge request between two branches.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":           stringProp("Project numeric ID or URL-safe path"),
				"source_branch":        stringProp("Source branch name"),
				"target_branch":        stringProp("Target branch name"),
				"title":                stringProp("Merge request title"),
				"description":          stringProp("Merge request description (Markdown)"),
				"labels":               stringProp("Comma-separated label names"),
				"assignee_ids":         intArrayProp("User IDs to assign (max 10)"),
				"reviewer_ids":         intArrayProp("User IDs to request review from (max 10)"),
				"milestone_id":         intProp("Milestone ID"),
				"remove_source_branch": boolProp("Delete the source branch when merged"),
			},
			Required: []string{"project_id", "source_branch", "target_branch", "title"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		var input validate.CreateMergeRequestInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id"), &input); err != nil {
			return nil, err
		}
		return tools.CreateMergeRequest(ctx, s.client, projectID, input)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_update_merge_request",
		Description: "Update an existing merge request. Use state_event to close or reopen it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":           stringProp("Project numeric ID or URL-safe path"),
				"mr_iid":               intProp("Merge request IID (project-scoped number)"),
				"title":                stringProp("New merge request title"),
				"description":          stringProp("New merge request description (Markdown)"),
				"labels":               stringProp("Comma-separated label names (replaces existing)"),
				"state_event":          stringProp("State transition: close or reopen"),
				"target_branch":        stringProp("New target branch"),
				"assignee_ids":         intArrayProp("User IDs to assign (max 10)"),
				"reviewer_ids":         intArrayProp("User IDs to request review from (max 10)"),
				"milestone_id":         intProp("Milestone ID"),
				"remove_source_branch": boolProp("Delete the source branch when merged"),
			},
			Required: []string{"project_id", "mr_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		mrIID, err := request.RequireInt("mr_iid")
		if err != nil {
			return nil, missingArg("mr_iid")
		}
		var input validate.UpdateMergeRequestInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id", "mr_iid"), &input); err != nil {
			return nil, err
		}
		return tools.UpdateMergeRequest(ctx, s.client, projectID, mrIID, input)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_mr_notes",
		Description: "List the notes (comments) on a merge request.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"mr_iid":     intProp("Merge request IID (project-scoped number)"),
				"sort":       stringProp("Sort direction: asc or desc (default: desc)"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
			Required: []string{"project_id", "mr_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		mrIID, err := request.RequireInt("mr_iid")
		if err != nil {
			return nil, missingArg("mr_iid")
		}
		page, perPage := pageArgs(request)
		return tools.ListMergeRequestNotes(ctx, s.client, tools.ListMergeRequestNotesParams{
			ProjectID:       projectID,
			MergeRequestIID: mrIID,
			Sort:            request.GetString("sort", ""),
			PageParams:      tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_mr_note",
		Description: "Add a comment to a merge request.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"mr_iid":     intProp("Merge request IID (project-scoped number)"),
				"body":       stringProp("Comment body (Markdown)"),
			},
			Required: []string{"project_id", "mr_iid", "body"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		mrIID, err := request.RequireInt("mr_iid")
		if err != nil {
			return nil, missingArg("mr_iid")
		}
		body, err := request.RequireString("body")
		if err != nil {
			return nil, missingArg("body")
		}
		return tools.CreateMergeRequestNote(ctx, s.client, projectID, mrIID, body)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_mr_changes",
		Description: "Get the file diffs of a merge request.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"mr_iid":     intProp("Merge request IID (project-scoped number)"),
			},
			Required: []string{"project_id", "mr_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		mrIID, err := request.RequireInt("mr_iid")
		if err != nil {
			return nil, missingArg("mr_iid")
		}
		return tools.GetMergeRequestChanges(ctx, s.client, projectID, mrIID)
	})
}
