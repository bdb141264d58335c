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

// registerProjectTools registers project and repository tools.
func (s *Server) registerProjectTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_projects",
		Description: "List GitLab projects accessible by the API token. Supports search, visibility, and ownership filters.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search":     stringProp("Search for projects by name"),
				"owned":      boolProp("Limit to projects explicitly owned by the current user"),
				"membership": boolProp("Limit to projects the current user is a member of"),
				"visibility": stringProp("Filter by visibility: public, internal, or private"),
				"order_by":   stringProp("Order results by field (default: created_at)"),
				"sort":       stringProp("Sort direction: asc or desc (default: desc)"),
				"page":       pageProp,
				"per_page":   perPageProp,
			},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		page, perPage := pageArgs(request)
		return tools.ListProjects(ctx, s.client, tools.ListProjectsParams{
			Search:     request.GetString("search", ""),
			Owned:      request.GetBool("owned", false),
			Membership: request.GetBool("membership", false),
			Visibility: request.GetString("visibility", ""),
			OrderBy:    request.GetString("order_by", ""),
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_project",
		Description: "Get details of a specific GitLab project by numeric ID or path (e.g. 'group/project').",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path like 'group/project'"),
			},
			Required: []string{"project_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		return tools.GetProject(ctx, s.client, projectID)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_project",
		Description: "Create a new GitLab project. Visibility defaults to private.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":                   stringProp("Project name"),
				"description":            stringProp("Project description"),
				"visibility":             stringProp("Visibility: public, internal, or private (default: private)"),
				"initialize_with_readme": boolProp("Create an initial README commit"),
				"namespace_id":           intProp("Namespace (group) ID to create the project under"),
			},
			Required: []string{"name"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return nil, missingArg("name")
		}
		return tools.CreateProject(ctx, s.client, tools.CreateProjectParams{
			Name:                 name,
			Description:          request.GetString("description", ""),
			Visibility:           request.GetString("visibility", ""),
			InitializeWithReadme: request.GetBool("initialize_with_readme", false),
			NamespaceID:          request.GetInt("namespace_id", 0),
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_branches",
		Description: "List repository branches for a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"search":     stringProp("Filter branches by name"),
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
		return tools.ListBranches(ctx, s.client, tools.ListBranchesParams{
			ProjectID:  projectID,
			Search:     request.GetString("search", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_branch",
		Description: "Get details of a single repository branch.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"branch":     stringProp("Branch name"),
			},
			Required: []string{"project_id", "branch"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		branch, err := request.RequireString("branch")
		if err != nil {
			return nil, missingArg("branch")
		}
		return tools.GetBranch(ctx, s.client, projectID, branch)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_commits",
		Description: "List repository commits for a project, optionally scoped to a ref, a path, or a time window.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"ref_name":   stringProp("Branch or tag name to list commits from"),
				"since":      stringProp("Only commits after this date (ISO 8601)"),
				"until":      stringProp("Only commits before this date (ISO 8601)"),
				"path":       stringProp("Only commits touching this file path"),
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
		return tools.ListCommits(ctx, s.client, tools.ListCommitsParams{
			ProjectID:  projectID,
			RefName:    request.GetString("ref_name", ""),
			Since:      request.GetString("since", ""),
			Until:      request.GetString("until", ""),
			Path:       request.GetString("path", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_tree",
		Description: "List files and directories in a repository tree.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"path":       stringProp("Path inside the repository (default: root)"),
				"ref":        stringProp("Branch, tag, or commit (default: default branch)"),
				"recursive":  boolProp("Recurse into subdirectories"),
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
		return tools.ListTree(ctx, s.client, tools.ListTreeParams{
			ProjectID:  projectID,
			Path:       request.GetString("path", ""),
			Ref:        request.GetString("ref", ""),
			Recursive:  request.GetBool("recursive", false),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_file",
		Description: "Get a file from a repository. Returns metadata and base64-encoded content.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"file_path":  stringProp("Path to the file inside the repository"),
				"ref":        stringProp("Branch, tag, or commit (default: HEAD)"),
			},
			Required: []string{"project_id", "file_path"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return nil, missingArg("file_path")
		}
		return tools.GetFile(ctx, s.client, projectID, filePath, request.GetString("ref", ""))
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_file",
		Description: "Create a new file in a repository by committing it to a branch.",
		InputSchema: fileWriteSchema(),
	}, s.fileWriteHandler(tools.CreateFile))

	s.addTool(mcp.Tool{
		Name:        "gitlab_update_file",
		Description: "Update an existing repository file by committing new content to a branch.",
		InputSchema: fileWriteSchema(),
	}, s.fileWriteHandler(tools.UpdateFile))
}

// fileWriteAction routes the file commit tools.
type fileWriteAction func(ctx context.Context, c *gitlab.Client, projectID, filePath string, input validate.WriteFileInput) (*gitlab.Result, error)

// fileWriteSchema is the shared schema for file create and update.
func fileWriteSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"project_id":     stringProp("Project numeric ID or URL-safe path"),
			"file_path":      stringProp("Path to the file inside the repository"),
			"branch":         stringProp("Branch to commit to"),
			"content":        stringProp("File content (text, or base64 when encoding is base64)"),
			"commit_message": stringProp("Commit message"),
			"encoding":       stringProp("Content encoding: text or base64 (default: text)"),
		},
		Required: []string{"project_id", "file_path", "branch", "content", "commit_message"},
	}
}

// fileWriteHandler adapts a file commit action into a tool handler.
func (s *Server) fileWriteHandler(action fileWriteAction) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return nil, missingArg("file_path")
		}
		var input validate.WriteFileInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id", "file_path"), &input); err != nil {
			return nil, err
		}
		return action(ctx, s.client, projectID, filePath, input)
	}
}
