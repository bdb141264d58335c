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

// Package errors defines the closed error taxonomy returned by the GitLab
// gateway. Every failure surfaced to a tool caller is exactly one of the
// types in this package; messages are sanitized before construction and are
// safe to show to MCP clients.
package errors

import (
	"fmt"
)

// ConfigError represents a configuration problem at startup.
// The process must not serve tool calls while configuration is invalid.
type ConfigError struct {
	// Key is the configuration input that has the problem (e.g., "GITLAB_TOKEN")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., URL parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ValidationError represents caller input that failed validation before any
// network activity. Always recoverable by the caller correcting its input.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// APIError represents a non-2xx response from the GitLab API that does not
// map to a more specific kind. The message is a sanitized, bounded excerpt
// of the response body.
type APIError struct {
	// StatusCode is the HTTP status code returned by GitLab
	StatusCode int

	// Message is the sanitized error description
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("GitLab API error %d: %s", e.StatusCode, e.Message)
}

// NotFoundError represents an HTTP 404 for a requested resource.
// The identifier is truncated before it is stored here.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "project", "issue")
	Resource string

	// ID is the (truncated) identifier that was not found
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found or not accessible: %s", e.Resource, e.ID)
}

// PermissionDeniedError represents an HTTP 401 or 403 from the GitLab API.
type PermissionDeniedError struct {
	// RequiredScope hints at the token scope needed for the operation
	RequiredScope string
}

// Error implements the error interface.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied, required scope: %s", e.RequiredScope)
}

// RateLimitError represents an HTTP 429 from the GitLab API.
type RateLimitError struct {
	// RetryAfter is the Retry-After value in seconds (0 if absent)
	RetryAfter int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %d seconds", e.RetryAfter)
	}
	return "rate limit exceeded"
}

// TransportKind identifies the category of a local or network failure.
type TransportKind string

const (
	// KindTimeout indicates the request exceeded its configured deadline.
	KindTimeout TransportKind = "timeout"
	// KindResponseTooLarge indicates the response body exceeded the size ceiling.
	KindResponseTooLarge TransportKind = "response_too_large"
	// KindTLS indicates a TLS handshake or certificate verification failure.
	KindTLS TransportKind = "tls"
	// KindConnection indicates a connection-level failure (refused, reset, DNS).
	KindConnection TransportKind = "connection"
	// KindCanceled indicates the caller abandoned the request.
	KindCanceled TransportKind = "canceled"
)

// TransportError represents a local or network failure before a usable HTTP
// response was obtained. The message carries the kind only, never internal
// stack detail.
type TransportError struct {
	// Kind is the failure category
	Kind TransportKind

	// Message is a short, sanitized description
	Message string

	// Cause is the underlying error, retained for errors.Is/As but never
	// rendered into caller-visible output
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("transport error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("transport error (%s)", e.Kind)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}
