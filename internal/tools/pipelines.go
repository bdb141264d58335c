package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// ListPipelinesParams filters a project's CI pipelines.
type ListPipelinesParams struct {
	ProjectID string
	Status    string
	Ref       string
	Sort      string
	PageParams
}

// ListPipelines lists CI pipelines for a project.
func ListPipelines(ctx context.Context, c *gitlab.Client, p ListPipelinesParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("pipeline_status", p.Status); err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("sort", p.Sort); err != nil {
		return nil, err
	}
	if err := validate.OptionalField("ref", p.Ref); err != nil {
		return nil, err
	}

	q := url.Values{}
	if p.Sort == "" {
		p.Sort = "desc"
	}
	q.Set("order_by", "id")
	q.Set("sort", p.Sort)
	setIfPresent(q, "status", p.Status)
	setIfPresent(q, "ref", p.Ref)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/pipelines", q)
}

// GetPipeline fetches a single pipeline by ID.
func GetPipeline(ctx context.Context, c *gitlab.Client, projectID string, pipelineID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/pipelines/"+strconv.Itoa(pipelineID), nil)
}

// ListPipelineJobsParams filters the jobs of one pipeline.
type ListPipelineJobsParams struct {
	ProjectID  string
	PipelineID int
	Scope      string
	PageParams
}

// ListPipelineJobs lists the jobs of a pipeline.
func ListPipelineJobs(ctx context.Context, c *gitlab.Client, p ListPipelineJobsParams) (*gitlab.Result, error) {
	id, err := validate.ProjectID(p.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validate.OptionalEnum("job_scope", p.Scope); err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "scope", p.Scope)
	p.apply(q)

	return c.Get(ctx, "/projects/"+id+"/pipelines/"+strconv.Itoa(p.PipelineID)+"/jobs", q)
}

// GetJobTrace fetches the log output of a CI job. The API returns the trace
// as text/plain, so the result carries it under a "content" key.
func GetJobTrace(ctx context.Context, c *gitlab.Client, projectID string, jobID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/projects/"+id+"/jobs/"+strconv.Itoa(jobID)+"/trace", nil)
}

// CreatePipeline triggers a new pipeline for a ref.
func CreatePipeline(ctx context.Context, c *gitlab.Client, projectID, ref string) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if err := validate.Field("ref", ref); err != nil {
		return nil, err
	}
	payload := map[string]string{"ref": ref}
	return c.Post(ctx, "/projects/"+id+"/pipeline", payload, nil)
}

// RetryPipeline retries the failed jobs of a pipeline.
func RetryPipeline(ctx context.Context, c *gitlab.Client, projectID string, pipelineID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/pipelines/"+strconv.Itoa(pipelineID)+"/retry", nil, nil)
}

// CancelPipeline cancels the running jobs of a pipeline.
func CancelPipeline(ctx context.Context, c *gitlab.Client, projectID string, pipelineID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/pipelines/"+strconv.Itoa(pipelineID)+"/cancel", nil, nil)
}

// DeletePipeline deletes a pipeline and its job artifacts.
func DeletePipeline(ctx context.Context, c *gitlab.Client, projectID string, pipelineID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Delete(ctx, "/projects/"+id+"/pipelines/"+strconv.Itoa(pipelineID))
}

// RetryJob retries a single failed or canceled job.
func RetryJob(ctx context.Context, c *gitlab.Client, projectID string, jobID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/jobs/"+strconv.Itoa(jobID)+"/retry", nil, nil)
}

// CancelJob cancels a running job.
func CancelJob(ctx context.Context, c *gitlab.Client, projectID string, jobID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/jobs/"+strconv.Itoa(jobID)+"/cancel", nil, nil)
}

// EraseJob erases a job's trace and artifacts.
func EraseJob(ctx context.Context, c *gitlab.Client, projectID string, jobID int) (*gitlab.Result, error) {
	id, err := validate.ProjectID(projectID)
	if err != nil {
		return nil, err
	}
	return c.Post(ctx, "/projects/"+id+"/jobs/"+strconv.Itoa(jobID)+"/erase", nil, nil)
}
