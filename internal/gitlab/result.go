package gitlab

import (
	"net/http"
	"strconv"
)

// Pagination carries GitLab's pagination headers for list responses.
type Pagination struct {
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	NextPage   int `json:"next_page,omitempty"`
	PrevPage   int `json:"prev_page,omitempty"`
}

// Result is the success half of a gateway outcome. Exactly one of Data or
// Items is populated, except for a 204/empty response where both are nil.
type Result struct {
	// StatusCode is the HTTP status of the successful response.
	StatusCode int

	// Data is the decoded JSON object for single-resource responses, or the
	// {"content": ...} wrapper for plain-text responses such as job traces.
	Data any

	// Items is the decoded JSON array for list responses.
	Items []any

	// Pagination is populated from response headers for list responses.
	Pagination *Pagination
}

// Empty reports whether the response carried no content (e.g. HTTP 204).
// An empty result is a valid success, not an error.
func (r *Result) Empty() bool {
	return r.Data == nil && r.Items == nil
}

// Payload returns the caller-facing representation of the result: the object
// itself, an items/pagination wrapper for lists, or an empty object for
// no-content responses.
func (r *Result) Payload() any {
	switch {
	case r.Items != nil:
		wrapped := map[string]any{"items": r.Items}
		if r.Pagination != nil {
			wrapped["pagination"] = r.Pagination
		}
		return wrapped
	case r.Data != nil:
		return r.Data
	default:
		return map[string]any{}
	}
}

// paginationFromHeaders reads GitLab's x-* pagination headers.
// Returns nil when no pagination headers are present.
func paginationFromHeaders(h http.Header) *Pagination {
	p := &Pagination{
		Total:      headerInt(h, "x-total"),
		TotalPages: headerInt(h, "x-total-pages"),
		Page:       headerInt(h, "x-page"),
		PerPage:    headerInt(h, "x-per-page"),
		NextPage:   headerInt(h, "x-next-page"),
		PrevPage:   headerInt(h, "x-prev-page"),
	}
	if *p == (Pagination{}) {
		return nil
	}
	return p
}

func headerInt(h http.Header, key string) int {
	v := h.Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
