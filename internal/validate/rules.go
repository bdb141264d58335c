// Package validate enforces per-field constraints on tool arguments before
// an API request is built. Validation is pure and synchronous: it performs
// no I/O and never mutates caller state.
package validate

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// Field length bounds shared across all operations that accept the field.
const (
	MaxProjectNameLength = 255
	MaxTitleLength       = 500
	MaxDescriptionLength = 50000
	MaxLabelsLength      = 1000
	MaxBranchLength      = 255
	MaxSearchLength      = 500
	MaxFileNameLength    = 255
	MaxAssignees         = 10

	// MaxPerPage is the GitLab pagination ceiling; larger values are clamped.
	MaxPerPage = 100
)

// rule is one row of the static validation rule set. The rule set is data,
// not code: new operations add rows rather than new control flow.
type rule struct {
	minLen int
	maxLen int
	enum   []string
}

// rules maps logical field names to their constraints. Immutable after init.
var rules = map[string]rule{
	"name":          {minLen: 1, maxLen: MaxProjectNameLength},
	"title":         {minLen: 1, maxLen: MaxTitleLength},
	"description":   {maxLen: MaxDescriptionLength},
	"body":          {minLen: 1, maxLen: MaxDescriptionLength},
	"labels":        {maxLen: MaxLabelsLength},
	"branch":        {minLen: 1, maxLen: MaxBranchLength},
	"source_branch": {minLen: 1, maxLen: MaxBranchLength},
	"target_branch": {minLen: 1, maxLen: MaxBranchLength},
	"ref":           {minLen: 1, maxLen: MaxBranchLength},
	"tag_name":      {minLen: 1, maxLen: MaxBranchLength},
	"search":        {minLen: 1, maxLen: MaxSearchLength},

	"sort":            {enum: []string{"asc", "desc"}},
	"state_event":     {enum: []string{"close", "reopen"}},
	"visibility":      {enum: []string{"internal", "private", "public"}},
	"mr_state":        {enum: []string{"all", "closed", "merged", "opened"}},
	"issue_state":     {enum: []string{"all", "closed", "opened"}},
	"milestone_state": {enum: []string{"active", "closed"}},
	"pipeline_status": {enum: []string{
		"canceled", "created", "failed", "manual", "pending", "preparing",
		"running", "scheduled", "skipped", "success", "waiting_for_resource",
	}},
	"job_scope": {enum: []string{
		"canceled", "created", "failed", "manual", "pending",
		"running", "skipped", "success",
	}},
	"search_scope": {enum: []string{
		"blobs", "commits", "issues", "merge_requests", "milestones",
		"notes", "projects", "snippet_titles", "users", "wiki_blobs",
	}},
	"project_search_scope": {enum: []string{
		"blobs", "commits", "issues", "merge_requests", "milestones",
		"notes", "wiki_blobs",
	}},
}

// Field checks a free-text value against the rule set entry for the given
// logical field name. Unknown field names are a programming error and fail.
func Field(name, value string) error {
	r, ok := rules[name]
	if !ok {
		return &errors.ValidationError{
			Field:   name,
			Message: "no validation rule declared for this field",
		}
	}

	// Bounds count runes, matching the structured input rules, so multibyte
	// text near a limit behaves the same on both validation paths.
	n := utf8.RuneCountInString(value)
	if n < r.minLen {
		return &errors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("must be at least %d characters", r.minLen),
		}
	}
	if r.maxLen > 0 && n > r.maxLen {
		return &errors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("must be at most %d characters", r.maxLen),
		}
	}
	return nil
}

// OptionalField applies Field only when the value is non-empty.
func OptionalField(name, value string) error {
	if value == "" {
		return nil
	}
	return Field(name, value)
}

// Enum checks a value against the fixed allowed set for the given logical
// field name. The error lists the accepted values.
func Enum(name, value string) error {
	r, ok := rules[name]
	if !ok || len(r.enum) == 0 {
		return &errors.ValidationError{
			Field:   name,
			Message: "no enumeration declared for this field",
		}
	}

	for _, allowed := range r.enum {
		if value == allowed {
			return nil
		}
	}

	accepted := append([]string(nil), r.enum...)
	sort.Strings(accepted)
	return &errors.ValidationError{
		Field:      name,
		Message:    fmt.Sprintf("%q is not an accepted value", value),
		Suggestion: "accepted values: " + strings.Join(accepted, ", "),
	}
}

// OptionalEnum applies Enum only when the value is non-empty.
func OptionalEnum(name, value string) error {
	if value == "" {
		return nil
	}
	return Enum(name, value)
}

// MaxItems bounds the size of a collection-valued field.
func MaxItems(name string, n, max int) error {
	if n > max {
		return &errors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("must contain at most %d items", max),
		}
	}
	return nil
}

// ClampPerPage bounds pagination to GitLab's per-page ceiling and floors
// nonsense values to the default of 20.
func ClampPerPage(perPage int) int {
	if perPage <= 0 {
		return 20
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}
