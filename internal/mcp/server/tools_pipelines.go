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

// pipelineAction routes the single-pipeline mutation tools.
type pipelineAction func(ctx context.Context, c *gitlab.Client, projectID string, pipelineID int) (*gitlab.Result, error)

// jobAction routes the single-job mutation tools.
type jobAction func(ctx context.Context, c *gitlab.Client, projectID string, jobID int) (*gitlab.Result, error)

// registerPipelineTools registers CI pipeline and job tools.
func (s *Server) registerPipelineTools() {
	pageProp, perPageProp := pageProps()

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_pipelines",
		Description: "List CI pipelines for a project, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"status":     stringProp("Filter by pipeline status (e.g. running, success, failed)"),
				"ref":        stringProp("Filter by branch or tag name"),
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
		return tools.ListPipelines(ctx, s.client, tools.ListPipelinesParams{
			ProjectID:  projectID,
			Status:     request.GetString("status", ""),
			Ref:        request.GetString("ref", ""),
			Sort:       request.GetString("sort", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_pipeline",
		Description: "Get details of a specific CI pipeline.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":  stringProp("Project numeric ID or URL-safe path"),
				"pipeline_id": intProp("Pipeline ID"),
			},
			Required: []string{"project_id", "pipeline_id"},
		},
	}, s.pipelineHandler(tools.GetPipeline))

	s.addTool(mcp.Tool{
		Name:        "gitlab_list_pipeline_jobs",
		Description: "List the jobs of a CI pipeline, optionally filtered by scope.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id":  stringProp("Project numeric ID or URL-safe path"),
				"pipeline_id": intProp("Pipeline ID"),
				"scope":       stringProp("Filter by job scope (e.g. failed, running, success)"),
				"page":        pageProp,
				"per_page":    perPageProp,
			},
			Required: []string{"project_id", "pipeline_id"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		pipelineID, err := request.RequireInt("pipeline_id")
		if err != nil {
			return nil, missingArg("pipeline_id")
		}
		page, perPage := pageArgs(request)
		return tools.ListPipelineJobs(ctx, s.client, tools.ListPipelineJobsParams{
			ProjectID:  projectID,
			PipelineID: pipelineID,
			Scope:      request.GetString("scope", ""),
			PageParams: tools.PageParams{Page: page, PerPage: perPage},
		})
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_get_job_trace",
		Description: "Get the log output (trace) of a CI job.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"job_id":     intProp("Job ID"),
			},
			Required: []string{"project_id", "job_id"},
		},
	}, s.jobHandler(tools.GetJobTrace))

	s.addTool(mcp.Tool{
		Name:        "gitlab_create_pipeline",
		Description: "Trigger a new CI pipeline for a branch or tag.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_id": stringProp("Project numeric ID or URL-safe path"),
				"ref":        stringProp("Branch or tag name to run the pipeline on"),
			},
			Required: []string{"project_id", "ref"},
		},
	}, func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		ref, err := request.RequireString("ref")
		if err != nil {
			return nil, missingArg("ref")
		}
		return tools.CreatePipeline(ctx, s.client, projectID, ref)
	})

	s.addTool(mcp.Tool{
		Name:        "gitlab_retry_pipeline",
		Description: "Retry the failed jobs of a pipeline.",
		InputSchema: pipelineSchema(),
	}, s.pipelineHandler(tools.RetryPipeline))

	s.addTool(mcp.Tool{
		Name:        "gitlab_cancel_pipeline",
		Description: "Cancel the running jobs of a pipeline.",
		InputSchema: pipelineSchema(),
	}, s.pipelineHandler(tools.CancelPipeline))

	s.addTool(mcp.Tool{
		Name:        "gitlab_delete_pipeline",
		Description: "Delete a pipeline along with its job artifacts. This cannot be undone.",
		InputSchema: pipelineSchema(),
	}, s.pipelineHandler(tools.DeletePipeline))

	s.addTool(mcp.Tool{
		Name:        "gitlab_retry_job",
		Description: "Retry a single failed or canceled CI job.",
		InputSchema: jobSchema(),
	}, s.jobHandler(tools.RetryJob))

	s.addTool(mcp.Tool{
		Name:        "gitlab_cancel_job",
		Description: "Cancel a running CI job.",
		InputSchema: jobSchema(),
	}, s.jobHandler(tools.CancelJob))

	s.addTool(mcp.Tool{
		Name:        "gitlab_erase_job",
		Description: "Erase a CI job's trace and artifacts. This cannot be undone.",
		InputSchema: jobSchema(),
	}, s.jobHandler(tools.EraseJob))
}

// pipelineSchema is the shared schema for single-pipeline tools.
func pipelineSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"project_id":  stringProp("Project numeric ID or URL-safe path"),
			"pipeline_id": intProp("Pipeline ID"),
		},
		Required: []string{"project_id", "pipeline_id"},
	}
}

// jobSchema is the shared schema for single-job tools.
func jobSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"project_id": stringProp("Project numeric ID or URL-safe path"),
			"job_id":     intProp("Job ID"),
		},
		Required: []string{"project_id", "job_id"},
	}
}

// pipelineHandler adapts a single-pipeline action into a tool handler.
func (s *Server) pipelineHandler(action pipelineAction) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		pipelineID, err := request.RequireInt("pipeline_id")
		if err != nil {
			return nil, missingArg("pipeline_id")
		}
		return action(ctx, s.client, projectID, pipelineID)
	}
}

// jobHandler adapts a single-job action into a tool handler.
func (s *Server) jobHandler(action jobAction) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return nil, missingArg("project_id")
		}
		jobID, err := request.RequireInt("job_id")
		if err != nil {
			return nil, missingArg("job_id")
		}
		return action(ctx, s.client, projectID, jobID)
	}
}
