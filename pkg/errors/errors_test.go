package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"config error with key",
			&ConfigError{Key: "GITLAB_TOKEN", Reason: "environment variable required"},
			"config error at GITLAB_TOKEN: environment variable required",
		},
		{
			"validation error with field",
			&ValidationError{Field: "title", Message: "must be at most 500 characters"},
			"validation failed on title: must be at most 500 characters",
		},
		{
			"api error",
			&APIError{StatusCode: 500, Message: "internal error"},
			"GitLab API error 500: internal error",
		},
		{
			"not found",
			&NotFoundError{Resource: "project", ID: "group/proj"},
			"project not found or not accessible: group/proj",
		},
		{
			"permission denied",
			&PermissionDeniedError{RequiredScope: "api"},
			"permission denied, required scope: api",
		},
		{
			"rate limit with retry-after",
			&RateLimitError{RetryAfter: 30},
			"rate limit exceeded, retry after 30 seconds",
		},
		{
			"rate limit without retry-after",
			&RateLimitError{},
			"rate limit exceeded",
		},
		{
			"transport error",
			&TransportError{Kind: KindTimeout, Message: "request timed out"},
			"transport error (timeout): request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{&ConfigError{Reason: "x"}, "configuration_error"},
		{&ValidationError{Message: "x"}, "validation_error"},
		{&APIError{StatusCode: 500}, "api_error"},
		{&NotFoundError{Resource: "project"}, "not_found_error"},
		{&PermissionDeniedError{}, "permission_denied_error"},
		{&RateLimitError{}, "rate_limit_error"},
		{&TransportError{Kind: KindConnection}, "transport_error"},
		{fmt.Errorf("plain"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindSeesThroughWrapping(t *testing.T) {
	err := Wrap(&NotFoundError{Resource: "issue", ID: "7"}, "while fetching")
	if got := Kind(err); got != "not_found_error" {
		t.Errorf("got %q, want not_found_error", got)
	}
	if !strings.Contains(err.Error(), "while fetching") {
		t.Errorf("wrap context lost: %q", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &RateLimitError{RetryAfter: 5}, true},
		{"timeout", &TransportError{Kind: KindTimeout}, true},
		{"connection", &TransportError{Kind: KindConnection}, true},
		{"canceled", &TransportError{Kind: KindCanceled}, false},
		{"too large", &TransportError{Kind: KindResponseTooLarge}, false},
		{"tls", &TransportError{Kind: KindTLS}, false},
		{"server error", &APIError{StatusCode: 503}, true},
		{"client error", &APIError{StatusCode: 422}, false},
		{"validation", &ValidationError{Message: "x"}, false},
		{"not found", &NotFoundError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
