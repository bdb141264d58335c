// Package secrets provides utilities for scrubbing sensitive values from
// text before it leaves the process in an error message or log line.
package secrets

import (
	"strings"
)

// RedactionMarker replaces every occurrence of a registered secret.
const RedactionMarker = "***"

// Scrubber replaces registered secret values in strings. The GitLab token is
// registered at startup; scrubbing is applied to every caller-visible error
// message even though the token should never legitimately appear in a
// response, as a defense against the remote service echoing request data.
type Scrubber struct {
	secrets []string
}

// NewScrubber creates a scrubber with no registered secrets.
func NewScrubber() *Scrubber {
	return &Scrubber{}
}

// Add registers a value to be scrubbed. Empty values are ignored.
func (s *Scrubber) Add(value string) {
	if value == "" {
		return
	}
	for _, existing := range s.secrets {
		if existing == value {
			return
		}
	}
	s.secrets = append(s.secrets, value)
}

// Scrub replaces all registered secrets in text with the redaction marker.
func (s *Scrubber) Scrub(text string) string {
	result := text
	for _, secret := range s.secrets {
		if strings.Contains(result, secret) {
			result = strings.ReplaceAll(result, secret, RedactionMarker)
		}
	}
	return result
}

// Truncate bounds a string to max runes, appending "..." when it was cut.
// Used for identifiers embedded in error messages so a hostile response
// cannot inflate error payloads.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
