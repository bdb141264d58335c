package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

var (
	numericID   = regexp.MustCompile(`^\d+$`)
	pathPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_./]+$`)
)

// encodeIdentifier validates and percent-encodes a project or group
// identifier for use as a URL path segment. GitLab accepts either numeric
// IDs or namespace paths like "group/project"; paths are URL-encoded with
// the slash included.
//
// The character allowlist is the sole path-traversal and injection defense:
// anything outside it is rejected rather than escaped.
func encodeIdentifier(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &errors.ValidationError{
			Field:   field,
			Message: "must not be empty",
		}
	}

	if numericID.MatchString(trimmed) {
		return trimmed, nil
	}

	if !pathPattern.MatchString(trimmed) {
		return "", &errors.ValidationError{
			Field:      field,
			Message:    "must be a numeric ID or a path like 'group/project'",
			Suggestion: "allowed characters: alphanumerics, hyphens, underscores, dots, and slashes",
		}
	}

	return url.PathEscape(trimmed), nil
}

// ProjectID validates and encodes a project identifier.
func ProjectID(raw string) (string, error) {
	return encodeIdentifier("project_id", raw)
}

// GroupID validates and encodes a group identifier.
func GroupID(raw string) (string, error) {
	return encodeIdentifier("group_id", raw)
}

// encodeSegment percent-encodes a free-form value for use as a single URL
// path segment. These allow a wider character set than identifiers but
// still reject control characters.
func encodeSegment(field, raw string) (string, error) {
	if raw == "" {
		return "", &errors.ValidationError{
			Field:   field,
			Message: "must not be empty",
		}
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f {
			return "", &errors.ValidationError{
				Field:   field,
				Message: "must not contain control characters",
			}
		}
	}
	return url.PathEscape(raw), nil
}

// FilePath percent-encodes a repository file path.
func FilePath(raw string) (string, error) {
	return encodeSegment("file_path", raw)
}

// WikiSlug percent-encodes a wiki page slug.
func WikiSlug(raw string) (string, error) {
	return encodeSegment("slug", raw)
}
