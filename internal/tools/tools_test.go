package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crunchtools/gitlab-mcp/internal/config"
	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/log"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// capture records the last request the fake API received.
type capture struct {
	method string
	path   string
	query  url.Values
	body   map[string]any
}

// newCaptureClient returns a client whose requests are recorded and answered
// with an empty JSON object.
func newCaptureClient(t *testing.T) (*gitlab.Client, *capture) {
	t.Helper()

	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.query = r.URL.Query()
		rec.body = nil
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg, err := config.New(srv.URL, "test-token")
	require.NoError(t, err)

	logger := log.New(&log.Config{Output: io.Discard})
	return gitlab.NewClient(cfg, logger), rec
}

func TestGetProject_EncodesPathIdentifier(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := GetProject(context.Background(), client, "group/proj")
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/group%2Fproj", rec.path)
}

func TestGetProject_RejectsBadIdentifier(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := GetProject(context.Background(), client, "group/proj?x=1")
	require.Error(t, err)

	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, rec.method, "no request must be sent for invalid input")
}

func TestListIssues_Defaults(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := ListIssues(context.Background(), client, ListIssuesParams{ProjectID: "42"})
	require.NoError(t, err)

	assert.Equal(t, "/api/v4/projects/42/issues", rec.path)
	assert.Equal(t, "opened", rec.query.Get("state"))
	assert.Equal(t, "created_at", rec.query.Get("order_by"))
	assert.Equal(t, "desc", rec.query.Get("sort"))
	assert.Equal(t, "1", rec.query.Get("page"))
	assert.Equal(t, "20", rec.query.Get("per_page"))
}

func TestListIssues_RejectsBadState(t *testing.T) {
	client, _ := newCaptureClient(t)

	_, err := ListIssues(context.Background(), client, ListIssuesParams{
		ProjectID: "42",
		State:     "abandoned",
	})
	require.Error(t, err)
}

func TestCreateIssue_PostsValidatedBody(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.CreateIssueInput{Title: "flaky pipeline", Labels: "ci"}
	_, err := CreateIssue(context.Background(), client, "42", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v4/projects/42/issues", rec.path)
	assert.Equal(t, "flaky pipeline", rec.body["title"])
}

func TestListMergeRequests_StateAndPagination(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := ListMergeRequests(context.Background(), client, ListMergeRequestsParams{
		ProjectID:  "group/proj",
		State:      "merged",
		PageParams: PageParams{Page: 3, PerPage: 500},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v4/projects/group%2Fproj/merge_requests", rec.path)
	assert.Equal(t, "merged", rec.query.Get("state"))
	assert.Equal(t, "3", rec.query.Get("page"))
	assert.Equal(t, "100", rec.query.Get("per_page"), "per_page clamped to API ceiling")
}

func TestGetBranch_EscapesBranchName(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := GetBranch(context.Background(), client, "42", "feature/login")
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/42/repository/branches/feature%2Flogin", rec.path)
}

func TestGetFile_DefaultRef(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := GetFile(context.Background(), client, "42", "src/main.go", "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/42/repository/files/src%2Fmain.go", rec.path)
	assert.Equal(t, "HEAD", rec.query.Get("ref"))
}

func TestPipelineActions_Routes(t *testing.T) {
	client, rec := newCaptureClient(t)
	ctx := context.Background()

	_, err := RetryPipeline(ctx, client, "42", 7)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v4/projects/42/pipelines/7/retry", rec.path)

	_, err = CancelJob(ctx, client, "42", 9)
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/42/jobs/9/cancel", rec.path)

	_, err = DeletePipeline(ctx, client, "42", 7)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/v4/projects/42/pipelines/7", rec.path)
}

func TestSearch_RequiresKnownScope(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := Search(context.Background(), client, SearchParams{Scope: "everything", Search: "x"})
	require.Error(t, err)

	_, err = Search(context.Background(), client, SearchParams{Scope: "projects", Search: "tooling"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/search", rec.path)
	assert.Equal(t, "projects", rec.query.Get("scope"))
	assert.Equal(t, "tooling", rec.query.Get("search"))
}

func TestCreateMergeRequestNote_RequiresBody(t *testing.T) {
	client, _ := newCaptureClient(t)

	_, err := CreateMergeRequestNote(context.Background(), client, "42", 5, "")
	require.Error(t, err)
}

func TestCreateSnippet_NestsFileAndDefaultsVisibility(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.CreateSnippetInput{
		Title:    "retry helper",
		FileName: "retry.go",
		Content:  "package retry",
	}
	_, err := CreateSnippet(context.Background(), client, "42", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v4/projects/42/snippets", rec.path)
	assert.Equal(t, "private", rec.body["visibility"])

	files, ok := rec.body["files"].([]any)
	require.True(t, ok, "snippet file must be nested under a files array")
	require.Len(t, files, 1)
	file := files[0].(map[string]any)
	assert.Equal(t, "retry.go", file["file_path"])
	assert.Equal(t, "package retry", file["content"])
}

func TestCreateSnippet_RequiresFileName(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.CreateSnippetInput{Title: "retry helper", Content: "package retry"}
	_, err := CreateSnippet(context.Background(), client, "42", input)
	require.Error(t, err)
	assert.Empty(t, rec.method, "no request must be sent for invalid input")
}

func TestGetWikiPage_EscapesSlug(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := GetWikiPage(context.Background(), client, "42", "guides/onboarding")
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/42/wikis/guides%2Fonboarding", rec.path)
}

func TestCreateWikiPage_DefaultsFormat(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.CreateWikiPageInput{Title: "Onboarding", Content: "# Welcome"}
	_, err := CreateWikiPage(context.Background(), client, "42", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v4/projects/42/wikis", rec.path)
	assert.Equal(t, "markdown", rec.body["format"])
}

func TestCreateWikiPage_RejectsUnknownFormat(t *testing.T) {
	client, _ := newCaptureClient(t)

	input := validate.CreateWikiPageInput{Title: "Onboarding", Content: "x", Format: "docx"}
	_, err := CreateWikiPage(context.Background(), client, "42", input)
	require.Error(t, err)
}

func TestCreateFile_CommitsToBranch(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.WriteFileInput{
		Branch:        "main",
		Content:       "hello",
		CommitMessage: "add greeting",
	}
	_, err := CreateFile(context.Background(), client, "42", "docs/hello.txt", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v4/projects/42/repository/files/docs%2Fhello.txt", rec.path)
	assert.Equal(t, "main", rec.body["branch"])
	assert.Equal(t, "add greeting", rec.body["commit_message"])
	assert.Equal(t, "text", rec.body["encoding"], "encoding defaults to text")
}

func TestUpdateFile_UsesPut(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.WriteFileInput{
		Branch:        "main",
		Content:       "hello again",
		CommitMessage: "update greeting",
	}
	_, err := UpdateFile(context.Background(), client, "42", "docs/hello.txt", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/v4/projects/42/repository/files/docs%2Fhello.txt", rec.path)
}

func TestCreateFile_RequiresBranch(t *testing.T) {
	client, rec := newCaptureClient(t)

	input := validate.WriteFileInput{Content: "hello", CommitMessage: "add greeting"}
	_, err := CreateFile(context.Background(), client, "42", "docs/hello.txt", input)
	require.Error(t, err)
	assert.Empty(t, rec.method, "no request must be sent for invalid input")
}

func TestListSnippets_Path(t *testing.T) {
	client, rec := newCaptureClient(t)

	_, err := ListSnippets(context.Background(), client, "group/proj", PageParams{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v4/projects/group%2Fproj/snippets", rec.path)
	assert.Equal(t, "20", rec.query.Get("per_page"))
}
