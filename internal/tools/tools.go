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

// Package tools contains the per-endpoint wrapper functions over the gateway
// client. Each wrapper validates its inputs, builds an operation intent, and
// delegates to the client; no wrapper touches the network directly.
package tools

import (
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// PageParams is the shared pagination input accepted by list operations.
type PageParams struct {
	Page    int
	PerPage int
}

// apply writes pagination values into a query, clamping per_page to the API
// ceiling.
func (p PageParams) apply(q url.Values) {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(validate.ClampPerPage(p.PerPage)))
}

// setIfPresent sets a query parameter only when the value is non-empty.
func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// setBool sets a query parameter to "true" when the flag is set.
func setBool(q url.Values, key string, value bool) {
	if value {
		q.Set(key, "true")
	}
}
