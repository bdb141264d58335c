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

// registerIssueTools registers issue and issue-note tools.
func (s *Server) registerIssueTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_issues",
		Description: "List issues for a project. Defaults to open issues, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":  stringProp("Project numeric ID or URL-safe path"),
				"state":       stringProp("Issue state: opened, closed, or all (default: opened)"),
				"labels":      stringProp("Comma-separated label names"),
				"milestone":   stringProp("Milestone title"),
				"search":      stringProp("Search in title and description"),
				"assignee_id": intProp("Filter by assignee user ID"),
				"order_by":    stringProp("Order results by field (default: created_at)"),
				"sort":        stringProp("Sort direction: asc or desc (default: desc)"),
				"page":        pageProp,
				"per_page":    perPageProp,
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListIssues(ctx, s.client, tools.ListIssuesParams{
			ProjectID:  projectID,
			State:      request.GetString("state", ""),
			Labels:     request.GetString("labels", ""),
			Milestone:  request.GetString("milestone", ""),
			Search:     request.GetString("search", ""),
			AssigneeID: request.GetInt("assignee_id", 0),
			OrderBy:    request.GetString("order_by", ""),
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_issue",
		Description: "Get details of a specific issue by its project-scoped IID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"issue_iid":  intProp("Issue IID (project-scoped number)"),
			},
			Required: []string{"project_id", "issue_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		issueIID, err := request.RequireInt("issue_iid")
		if err != nil {
			return nil, missingArg("issue_iid")
		}
		return tools.GetIssue(ctx, s.client, projectID, issueIID)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_issue",
		Description: "Create a new issue in a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":   stringProp("Project numeric ID or URL-safe path"),
				"title":        stringProp("Issue title"),
				"description":  stringProp("Issue description (Markdown)"),
				"labels":       stringProp("Comma-separated label names"),
				"assignee_ids": intArrayProp("User IDs to assign (max 10)"),
				"milestone_id": intProp("Milestone ID"),
				"confidential": boolProp("Mark the issue as confidential"),
			},
			Required: []string{"project_id", "title"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		var input validate.CreateIssueInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id"), &input); err != nil {
			return nil, err
		}
		return tools.CreateIssue(ctx, s.client, projectID, input)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_update_issue",
		Description: "Update an existing issue. Use state_event to close or reopen it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":   stringProp("Project numeric ID or URL-safe path"),
				"issue_iid":    intProp("Issue IID (project-scoped number)"),
				"title":        stringProp("New issue title"),
				"description":  stringProp("New issue description (Markdown)"),
				"labels":       stringProp("Comma-separated label names (replaces existing)"),
				"state_event":  stringProp("State transition: close or reopen"),
				"assignee_ids": intArrayProp("User IDs to assign (max 10)"),
				"milestone_id": intProp("Milestone ID"),
				"confidential": boolProp("Mark the issue as confidential"),
			},
			Required: []string{"project_id", "issue_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		issueIID, err := request.RequireInt("issue_iid")
		if err != nil {
			return nil, missingArg("issue_iid")
		}
		var input validate.UpdateIssueInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id", "issue_iid"), &input); err != nil {
			return nil, err
		}
		return tools.UpdateIssue(ctx, s.client, projectID, issueIID, input)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_issue_notes",
		Description: "List the notes (comments) on an issue.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"issue_iid":  intProp("Issue IID (project-scoped number)"),
				"sort":       stringProp("Sort direction: asc or desc (default: desc)"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
			Required: []string{"project_id", "issue_iid"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		issueIID, err := request.RequireInt("issue_iid")
		if err != nil {
			return nil, missingArg("issue_iid")
		}
		page, perPage := pageArgs(request)
		return tools.ListIssueNotes(ctx, s.client, tools.ListIssueNotesParams{
			ProjectID:  projectID,
			IssueIID:   issueIID,
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_issue_note",
		Description: "Add a comment to an issue.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"issue_iid":  intProp("Issue IID (project-scoped number)"),
				"body":       stringProp("Comment body (Markdown)"),
			},
			Required: []string{"project_id", "issue_iid", "body"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		issueIID, err := request.RequireInt("issue_iid")
		if err != nil {
			return nil, missingArg("issue_iid")
		}
		body, err := request.RequireString("body")
		if err != nil {
			return nil, missingArg("body")
		}
		return tools.CreateIssueNote(ctx, s.client, projectID, issueIID, body)
	})
}
