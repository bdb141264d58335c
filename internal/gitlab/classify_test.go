package gitlab

import (
	"testing"
)

func TestResourceFromPath(t *testing.T) {
	tests := []struct {
		path         string
		wantResource string
		wantID       string
	}{
		{"/projects/42", "project", "42"},
		{"/projects/group%2Fproj", "project", "group/proj"},
		{"/projects/42/issues/7", "issue", "7"},
		{"/projects/42/merge_requests/3/notes/9", "note", "9"},
		{"/projects/42/pipelines/100", "pipeline", "100"},
		{"/projects/42/repository/branches/main", "branch", "main"},
		{"/groups/devops", "group", "devops"},
		{"/users/5", "user", "5"},
		{"/version", "resource", "/version"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resource, id := resourceFromPath(tt.path)
			if resource != tt.wantResource {
				t.Errorf("resource: got %q, want %q", resource, tt.wantResource)
			}
			if id != tt.wantID {
				t.Errorf("id: got %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message": "404 Project Not Found"}`, "404 Project Not Found"},
		{"error key", `{"error": "insufficient_scope"}`, "insufficient_scope"},
		{"plain text", "  gateway exploded  ", "gateway exploded"},
		{"empty body", "", "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
