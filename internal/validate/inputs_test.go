package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

func TestDecodeArgs_ClosedSchema(t *testing.T) {
	var input CreateIssueInput
	err := DecodeArgs(map[string]any{
		"title":      "a bug",
		"typo_field": "oops",
	}, &input)
	require.Error(t, err)

	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "typo_field", ve.Field)
	assert.Contains(t, ve.Message, "unrecognized")
}

func TestDecodeArgs_Populates(t *testing.T) {
	var input CreateIssueInput
	err := DecodeArgs(map[string]any{
		"title":        "a bug",
		"description":  "details",
		"labels":       "bug,urgent",
		"assignee_ids": []any{float64(1), float64(2)},
		"confidential": true,
	}, &input)
	require.NoError(t, err)

	assert.Equal(t, "a bug", input.Title)
	assert.Equal(t, "bug,urgent", input.Labels)
	assert.Equal(t, []int{1, 2}, input.AssigneeIDs)
	assert.True(t, input.Confidential)
}

func TestDecodeArgs_TypeMismatch(t *testing.T) {
	var input CreateIssueInput
	err := DecodeArgs(map[string]any{"title": 12345}, &input)
	require.Error(t, err)

	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateIssueInput_Validate(t *testing.T) {
	valid := CreateIssueInput{Title: "a bug"}
	assert.NoError(t, valid.Validate())

	missing := CreateIssueInput{}
	err := missing.Validate()
	require.Error(t, err)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	tooLong := CreateIssueInput{Title: strings.Repeat("a", MaxTitleLength+1)}
	assert.Error(t, tooLong.Validate())

	tooMany := CreateIssueInput{Title: "a", AssigneeIDs: make([]int, MaxAssignees+1)}
	assert.Error(t, tooMany.Validate())
}

func TestUpdateIssueInput_Validate(t *testing.T) {
	assert.NoError(t, UpdateIssueInput{}.Validate(), "all fields optional")
	assert.NoError(t, UpdateIssueInput{StateEvent: "close"}.Validate())
	assert.Error(t, UpdateIssueInput{StateEvent: "destroy"}.Validate())
}

func TestCreateMergeRequestInput_Validate(t *testing.T) {
	valid := CreateMergeRequestInput{
		SourceBranch: "feature",
		TargetBranch: "main",
		Title:        "add feature",
	}
	assert.NoError(t, valid.Validate())

	missingBranch := CreateMergeRequestInput{TargetBranch: "main", Title: "x"}
	err := missingBranch.Validate()
	require.Error(t, err)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "source_branch", ve.Field)
}

func TestCreateProjectInput_Validate(t *testing.T) {
	assert.NoError(t, CreateProjectInput{Name: "tooling", Visibility: "private"}.Validate())
	assert.Error(t, CreateProjectInput{Visibility: "private"}.Validate(), "name required")
	assert.Error(t, CreateProjectInput{Name: "tooling", Visibility: "secret"}.Validate())
}

func TestCreateSnippetInput_Validate(t *testing.T) {
	valid := CreateSnippetInput{Title: "helper", FileName: "helper.go", Content: "package x"}
	assert.NoError(t, valid.Validate())

	missingFile := CreateSnippetInput{Title: "helper", Content: "package x"}
	err := missingFile.Validate()
	require.Error(t, err)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file_name", ve.Field)

	assert.Error(t, CreateSnippetInput{Title: "h", FileName: "f", Content: ""}.Validate())
	assert.Error(t, CreateSnippetInput{Title: "h", FileName: "f", Content: "x", Visibility: "hidden"}.Validate())
}

func TestCreateWikiPageInput_Validate(t *testing.T) {
	assert.NoError(t, CreateWikiPageInput{Title: "Home", Content: "welcome", Format: "markdown"}.Validate())
	assert.Error(t, CreateWikiPageInput{Content: "welcome"}.Validate(), "title required")
	assert.Error(t, CreateWikiPageInput{Title: "Home", Content: "x", Format: "docx"}.Validate())
}

func TestWriteFileInput_Validate(t *testing.T) {
	valid := WriteFileInput{Branch: "main", Content: "hello", CommitMessage: "add file"}
	assert.NoError(t, valid.Validate())

	// An empty file is a legitimate commit.
	empty := WriteFileInput{Branch: "main", CommitMessage: "add empty file"}
	assert.NoError(t, empty.Validate())

	missingBranch := WriteFileInput{Content: "hello", CommitMessage: "add file"}
	err := missingBranch.Validate()
	require.Error(t, err)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "branch", ve.Field)

	assert.Error(t, WriteFileInput{Branch: "main", CommitMessage: "m", Encoding: "utf-7"}.Validate())
}
