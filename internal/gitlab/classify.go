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

package gitlab

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
	"github.com/crunchtools/gitlab-mcp/pkg/secrets"
)

const (
	// maxIdentifierLength bounds identifiers embedded in error messages.
	maxIdentifierLength = 40

	// maxExcerptLength bounds response-body excerpts in error messages.
	maxExcerptLength = 200
)

// classifyStatus maps a non-2xx response to exactly one typed failure.
// Every message passes the credential scrubber before construction, even
// though the token should never legitimately appear in a response.
func (c *Client) classifyStatus(intent Intent, status int, header http.Header, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &errors.PermissionDeniedError{RequiredScope: "valid Personal Access Token"}

	case http.StatusForbidden:
		return &errors.PermissionDeniedError{RequiredScope: "required permission scope"}

	case http.StatusNotFound:
		resource, id := resourceFromPath(intent.Path)
		return &errors.NotFoundError{
			Resource: resource,
			ID:       secrets.Truncate(c.scrubber.Scrub(id), maxIdentifierLength),
		}

	case http.StatusTooManyRequests:
		retryAfter := 0
		if v := header.Get("Retry-After"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				retryAfter = n
			}
		}
		return &errors.RateLimitError{RetryAfter: retryAfter}

	default:
		// Deliberate catch-all: 400, 422, 5xx, and anything else lands here.
		return &errors.APIError{
			StatusCode: status,
			Message:    secrets.Truncate(c.scrubber.Scrub(extractMessage(body)), maxExcerptLength),
		}
	}
}

// extractMessage pulls GitLab's error description out of a response body.
// GitLab error bodies are usually {"message": ...} or {"error": ...}.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return "unknown error"
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		if msg, ok := decoded["message"]; ok {
			return fmt.Sprintf("%v", msg)
		}
		if msg, ok := decoded["error"]; ok {
			return fmt.Sprintf("%v", msg)
		}
	}

	return strings.TrimSpace(string(body))
}

// resourceCollections maps API path collections to resource names for
// not-found messages.
var resourceCollections = map[string]string{
	"projects":       "project",
	"groups":         "group",
	"issues":         "issue",
	"merge_requests": "merge request",
	"pipelines":      "pipeline",
	"jobs":           "job",
	"branches":       "branch",
	"commits":        "commit",
	"files":          "file",
	"releases":       "release",
	"labels":         "label",
	"milestones":     "milestone",
	"users":          "user",
	"notes":          "note",
}

// resourceFromPath derives the resource type and identifier that were not
// found from the request path. The deepest collection/identifier pair wins,
// so "/projects/x/issues/5" reports issue 5 rather than project x.
func resourceFromPath(path string) (resource, id string) {
	resource, id = "resource", path

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		name, ok := resourceCollections[segments[i]]
		if !ok {
			continue
		}
		if decoded, err := url.PathUnescape(segments[i+1]); err == nil {
			resource, id = name, decoded
		} else {
			resource, id = name, segments[i+1]
		}
	}

	return resource, id
}

// classifyTransport maps a local or network failure to a TransportError.
// Messages are fixed short strings: no internal exception detail crosses the
// gateway boundary.
func (c *Client) classifyTransport(err error) error {
	kind, message := errors.KindConnection, "connection failed"

	switch {
	case stderrors.Is(err, context.Canceled):
		kind, message = errors.KindCanceled, "request canceled"

	case stderrors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		kind, message = errors.KindTimeout, "request timed out"

	case isTLSFailure(err):
		kind, message = errors.KindTLS, "TLS verification failed"
	}

	return &errors.TransportError{
		Kind:    kind,
		Message: c.scrubber.Scrub(message),
		Cause:   err,
	}
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

// isTLSFailure reports whether err is a TLS handshake or certificate error.
func isTLSFailure(err error) bool {
	var certErr *tls.CertificateVerificationError
	if stderrors.As(err, &certErr) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if stderrors.As(err, &unknownAuthority) {
		return true
	}

	var hostnameErr x509.HostnameError
	if stderrors.As(err, &hostnameErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "tls") || strings.Contains(msg, "certificate")
}
