package secrets

import (
	"strings"
	"testing"
)

func TestScrubber_ReplacesAllOccurrences(t *testing.T) {
	s := NewScrubber()
	s.Add("glpat-s3cret")

	got := s.Scrub("token glpat-s3cret rejected, please renew glpat-s3cret")
	if strings.Contains(got, "glpat-s3cret") {
		t.Errorf("secret survived scrubbing: %q", got)
	}
	if strings.Count(got, RedactionMarker) != 2 {
		t.Errorf("expected 2 redaction markers, got %q", got)
	}
}

func TestScrubber_IgnoresEmptyAndDuplicates(t *testing.T) {
	s := NewScrubber()
	s.Add("")
	s.Add("tok")
	s.Add("tok")

	if got := s.Scrub("a tok b"); got != "a "+RedactionMarker+" b" {
		t.Errorf("unexpected scrub result: %q", got)
	}
	if got := s.Scrub("clean text"); got != "clean text" {
		t.Errorf("scrubber mutated clean text: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "short", 10, "short"},
		{"at limit", "exact", 5, "exact"},
		{"over limit", "abcdefghij", 4, "abcd..."},
		{"zero max", "anything", 0, ""},
		{"multibyte", "héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
