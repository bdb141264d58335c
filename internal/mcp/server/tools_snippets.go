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

// registerSnippetTools registers project snippet tools.
func (s *Server) registerSnippetTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_snippets",
		Description: "List the snippets of a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
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
		return tools.ListSnippets(ctx, s.client, projectID, tools.PageParams{Page: page, PerPage: perPage})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_snippet",
		Description: "Create a snippet (shared code fragment) in a project.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":  stringProp("Project numeric ID or URL-safe path"),
				"title":       stringProp("Snippet title"),
				"file_name":   stringProp("File name for the snippet (e.g. example.go)"),
				"content":     stringProp("Snippet content"),
				"description": stringProp("Snippet description (Markdown)"),
				"visibility":  stringProp("Visibility: private, internal, or public (default: private)"),
			},
			Required: []string{"project_id", "title", "file_name", "content"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		var input validate.CreateSnippetInput
		if err := validate.DecodeArgs(bodyArgs(request, "project_id"), &input); err != nil {
			return nil, err
		}
		return tools.CreateSnippet(ctx, s.client, projectID, input)
	})
}
