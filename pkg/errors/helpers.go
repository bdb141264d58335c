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

package errors

import (
	"errors"
	"fmt"
)

// As is a convenience re-export of the standard library's errors.As, so
// callers matching against the taxonomy need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is a convenience re-export of the standard library's errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Kind returns the taxonomy name for an error, for log fields and metric
// labels. Returns "unknown" for errors outside the closed taxonomy (which
// indicates a bug in the classifier) and "success" for nil.
func Kind(err error) string {
	if err == nil {
		return "success"
	}

	var (
		configErr     *ConfigError
		validationErr *ValidationError
		apiErr        *APIError
		notFoundErr   *NotFoundError
		permErr       *PermissionDeniedError
		rateErr       *RateLimitError
		transportErr  *TransportError
	)

	switch {
	case errors.As(err, &configErr):
		return "configuration_error"
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &notFoundErr):
		return "not_found_error"
	case errors.As(err, &permErr):
		return "permission_denied_error"
	case errors.As(err, &rateErr):
		return "rate_limit_error"
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	default:
		return "unknown"
	}
}

// IsRetryable reports whether a caller may reasonably retry the operation
// that produced err. The gateway itself never retries; this is advisory for
// callers that know their operation is idempotent.
func IsRetryable(err error) bool {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		switch transportErr.Kind {
		case KindTimeout, KindConnection:
			return true
		default:
			return false
		}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}

	return false
}
