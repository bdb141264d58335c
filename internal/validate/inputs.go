package validate

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// CreateIssueInput is the validated body payload for issue creation.
type CreateIssueInput struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Labels       string `json:"labels,omitempty"`
	AssigneeIDs  []int  `json:"assignee_ids,omitempty"`
	MilestoneID  int    `json:"milestone_id,omitempty"`
	Confidential bool   `json:"confidential,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in CreateIssueInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Labels, validation.RuneLength(0, MaxLabelsLength)),
		validation.Field(&in.AssigneeIDs, validation.Length(0, MaxAssignees)),
	))
}

// UpdateIssueInput is the validated body payload for issue updates.
// All fields are optional; zero values are omitted from the request body.
type UpdateIssueInput struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Labels       string `json:"labels,omitempty"`
	StateEvent   string `json:"state_event,omitempty"`
	AssigneeIDs  []int  `json:"assignee_ids,omitempty"`
	MilestoneID  int    `json:"milestone_id,omitempty"`
	Confidential *bool  `json:"confidential,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in UpdateIssueInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Labels, validation.RuneLength(0, MaxLabelsLength)),
		validation.Field(&in.StateEvent, validation.In("close", "reopen")),
		validation.Field(&in.AssigneeIDs, validation.Length(0, MaxAssignees)),
	))
}

// CreateMergeRequestInput is the validated body payload for MR creation.
type CreateMergeRequestInput struct {
	SourceBranch       string `json:"source_branch"`
	TargetBranch       string `json:"target_branch"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	Labels             string `json:"labels,omitempty"`
	AssigneeIDs        []int  `json:"assignee_ids,omitempty"`
	ReviewerIDs        []int  `json:"reviewer_ids,omitempty"`
	MilestoneID        int    `json:"milestone_id,omitempty"`
	RemoveSourceBranch bool   `json:"remove_source_branch,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in CreateMergeRequestInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.SourceBranch, validation.Required, validation.RuneLength(1, MaxBranchLength)),
		validation.Field(&in.TargetBranch, validation.Required, validation.RuneLength(1, MaxBranchLength)),
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Labels, validation.RuneLength(0, MaxLabelsLength)),
		validation.Field(&in.AssigneeIDs, validation.Length(0, MaxAssignees)),
		validation.Field(&in.ReviewerIDs, validation.Length(0, MaxAssignees)),
	))
}

// UpdateMergeRequestInput is the validated body payload for MR updates.
type UpdateMergeRequestInput struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	Labels             string `json:"labels,omitempty"`
	StateEvent         string `json:"state_event,omitempty"`
	AssigneeIDs        []int  `json:"assignee_ids,omitempty"`
	ReviewerIDs        []int  `json:"reviewer_ids,omitempty"`
	MilestoneID        int    `json:"milestone_id,omitempty"`
	TargetBranch       string `json:"target_branch,omitempty"`
	RemoveSourceBranch *bool  `json:"remove_source_branch,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in UpdateMergeRequestInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Labels, validation.RuneLength(0, MaxLabelsLength)),
		validation.Field(&in.StateEvent, validation.In("close", "reopen")),
		validation.Field(&in.AssigneeIDs, validation.Length(0, MaxAssignees)),
		validation.Field(&in.ReviewerIDs, validation.Length(0, MaxAssignees)),
		validation.Field(&in.TargetBranch, validation.RuneLength(0, MaxBranchLength)),
	))
}

// CreateProjectInput is the validated body payload for project creation.
type CreateProjectInput struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Visibility           string `json:"visibility,omitempty"`
	InitializeWithReadme bool   `json:"initialize_with_readme,omitempty"`
	NamespaceID          int    `json:"namespace_id,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in CreateProjectInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxProjectNameLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Visibility, validation.In("public", "internal", "private")),
	))
}

// CreateSnippetInput is the validated body payload for snippet creation.
// The API nests the snippet file under a "files" array; the tool wrapper
// performs that remapping after validation.
type CreateSnippetInput struct {
	Title       string `json:"title"`
	FileName    string `json:"file_name"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in CreateSnippetInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.FileName, validation.Required, validation.RuneLength(1, MaxFileNameLength)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&in.Visibility, validation.In("public", "internal", "private")),
	))
}

// CreateWikiPageInput is the validated body payload for wiki page creation.
type CreateWikiPageInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in CreateWikiPageInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.Format, validation.In("markdown", "rdoc", "asciidoc", "org")),
	))
}

// WriteFileInput is the validated body payload for repository file commits,
// shared by file creation and update. Content may be empty (a valid commit);
// its encoding must be declared when it is base64.
type WriteFileInput struct {
	Branch        string `json:"branch"`
	Content       string `json:"content"`
	CommitMessage string `json:"commit_message"`
	Encoding      string `json:"encoding,omitempty"`
}

// Validate implements the validation.Validatable interface.
func (in WriteFileInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Branch, validation.Required, validation.RuneLength(1, MaxBranchLength)),
		validation.Field(&in.CommitMessage, validation.Required, validation.RuneLength(1, MaxDescriptionLength)),
		validation.Field(&in.Encoding, validation.In("text", "base64")),
	))
}

// asValidationError converts an ozzo-validation error into the gateway's
// typed ValidationError, naming the first offending field deterministically.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if ok := errorsAs(err, &fieldErrs); ok && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for f := range fieldErrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		first := fields[0]
		return &errors.ValidationError{
			Field:   first,
			Message: fieldErrs[first].Error(),
		}
	}

	return &errors.ValidationError{Message: err.Error()}
}

// errorsAs adapts errors.As for validation.Errors, which is a map type
// rather than a pointer receiver.
func errorsAs(err error, target *validation.Errors) bool {
	if ve, ok := err.(validation.Errors); ok {
		*target = ve
		return true
	}
	return false
}

// DecodeArgs unmarshals raw tool arguments into a typed input struct under
// the closed-schema policy: any key not declared by the struct's json tags
// is a ValidationError rather than being silently dropped.
func DecodeArgs(args map[string]any, dst any) error {
	allowed := jsonFieldNames(dst)
	unknown := make([]string, 0)
	for key := range args {
		if _, ok := allowed[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &errors.ValidationError{
			Field:      unknown[0],
			Message:    "unrecognized field",
			Suggestion: "remove it or check the tool's declared parameters",
		}
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return &errors.ValidationError{Message: "arguments are not JSON-encodable"}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return &errors.ValidationError{
				Field:   typeErr.Field,
				Message: "has the wrong type, expected " + typeErr.Type.String(),
			}
		}
		return &errors.ValidationError{Message: "arguments do not match the expected schema"}
	}

	return nil
}

// jsonFieldNames collects the json tag names declared by a struct pointer.
func jsonFieldNames(v any) map[string]struct{} {
	names := make(map[string]struct{})
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		names[name] = struct{}{}
	}
	return names
}
