package gitlab

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/crunchtools/gitlab-mcp/internal/config"
	"github.com/crunchtools/gitlab-mcp/internal/log"
	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

const testToken = "t0k3n"

// newTestClient points a client at the given handler over loopback HTTP.
func newTestClient(t *testing.T, handler http.Handler, opts ...config.Option) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg, err := config.New(srv.URL, testToken, opts...)
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	logger := log.New(&log.Config{Output: io.Discard})
	return NewClient(cfg, logger), srv
}

func TestDo_SendsTokenHeaderOnly(t *testing.T) {
	var gotAuth, gotURL string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("PRIVATE-TOKEN")
		gotURL = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1}`))
	}))

	_, err := client.Get(context.Background(), "/projects/1", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != testToken {
		t.Errorf("expected token in PRIVATE-TOKEN header, got %q", gotAuth)
	}
	if strings.Contains(gotURL, testToken) {
		t.Errorf("token leaked into request URL: %s", gotURL)
	}
}

func TestDo_NotFoundCarriesDecodedIdentifier(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The encoded identifier must arrive as one path segment.
		if !strings.Contains(r.URL.EscapedPath(), "group%2Fproj") {
			t.Errorf("expected encoded project path, got %s", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "404 Project Not Found"}`))
	}))

	_, err := client.Get(context.Background(), "/projects/group%2Fproj", nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var notFound *errors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "group/proj") {
		t.Errorf("expected decoded identifier in message, got %q", err.Error())
	}
	if strings.Contains(err.Error(), testToken) {
		t.Errorf("token leaked into error message: %q", err.Error())
	}
}

func TestDo_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var pd *errors.PermissionDeniedError
				if !errors.As(err, &pd) {
					t.Fatalf("expected PermissionDeniedError, got %T", err)
				}
			},
		},
		{
			name:   "403 forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var pd *errors.PermissionDeniedError
				if !errors.As(err, &pd) {
					t.Fatalf("expected PermissionDeniedError, got %T", err)
				}
			},
		},
		{
			name:   "429 rate limited",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"42"}},
			check: func(t *testing.T, err error) {
				var rl *errors.RateLimitError
				if !errors.As(err, &rl) {
					t.Fatalf("expected RateLimitError, got %T", err)
				}
				if rl.RetryAfter != 42 {
					t.Errorf("expected retry-after 42, got %d", rl.RetryAfter)
				}
			},
		},
		{
			name:   "500 server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var api *errors.APIError
				if !errors.As(err, &api) {
					t.Fatalf("expected APIError, got %T", err)
				}
				if api.StatusCode != http.StatusInternalServerError {
					t.Errorf("expected status 500, got %d", api.StatusCode)
				}
			},
		},
		{
			name:   "422 unprocessable",
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, err error) {
				var api *errors.APIError
				if !errors.As(err, &api) {
					t.Fatalf("expected APIError, got %T", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, vs := range tt.header {
					for _, v := range vs {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "nope"}`))
			}))

			_, err := client.Get(context.Background(), "/projects/1", nil)
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}
			tt.check(t, err)
			if strings.Contains(err.Error(), testToken) {
				t.Errorf("token leaked into error message: %q", err.Error())
			}
		})
	}
}

func TestDo_NoRetries(t *testing.T) {
	var attempts int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	}))

	_, err := client.Get(context.Background(), "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestDo_NoContentIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	result, err := client.Delete(context.Background(), "/projects/1/pipelines/2")
	if err != nil {
		t.Fatalf("expected 204 to succeed, got %v", err)
	}
	if !result.Empty() {
		t.Error("expected empty result for 204")
	}
	if result.StatusCode != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", result.StatusCode)
	}
}

func TestDo_EmptyBodyIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}))

	result, err := client.Get(context.Background(), "/user", nil)
	if err != nil {
		t.Fatalf("expected empty 200 to succeed, got %v", err)
	}
	if !result.Empty() {
		t.Error("expected empty result")
	}
}

func TestDo_ListResponseCarriesPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("x-total", "120")
		w.Header().Set("x-total-pages", "6")
		w.Header().Set("x-page", "2")
		w.Header().Set("x-per-page", "20")
		w.Header().Set("x-next-page", "3")
		w.Header().Set("x-prev-page", "1")
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))

	result, err := client.Get(context.Background(), "/projects", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Pagination == nil {
		t.Fatal("expected pagination from headers")
	}
	if result.Pagination.Total != 120 || result.Pagination.NextPage != 3 {
		t.Errorf("unexpected pagination: %+v", result.Pagination)
	}
}

func TestDo_PlainTextWrappedAsContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("job log line 1\njob log line 2"))
	}))

	result, err := client.Get(context.Background(), "/projects/1/jobs/2/trace", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map data, got %T", result.Data)
	}
	if !strings.Contains(data["content"].(string), "job log line 1") {
		t.Errorf("expected trace content, got %v", data["content"])
	}
}

func TestDo_ResponseSizeCeiling(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["` + strings.Repeat("x", 2048) + `"]`))
	}), config.WithMaxResponseBytes(1024))

	_, err := client.Get(context.Background(), "/projects", nil)
	if err == nil {
		t.Fatal("expected error for oversized response")
	}

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if transport.Kind != errors.KindResponseTooLarge {
		t.Errorf("expected response-too-large kind, got %q", transport.Kind)
	}
}

func TestDo_CanceledContext(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if strings.Contains(err.Error(), testToken) {
		t.Errorf("token leaked into error message: %q", err.Error())
	}
}

func TestDo_TimeoutKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}), config.WithTimeout(50*time.Millisecond))

	_, err := client.Get(context.Background(), "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error for slow server")
	}

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if transport.Kind != errors.KindTimeout {
		t.Errorf("expected timeout kind, got %q", transport.Kind)
	}
	if strings.Contains(err.Error(), testToken) {
		t.Errorf("token leaked into error message: %q", err.Error())
	}
}

func TestDo_TLSVerificationFailure(t *testing.T) {
	// A self-signed server certificate must be rejected with the client's
	// default verification settings.
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg, err := config.New(srv.URL, testToken)
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	client := NewClient(cfg, log.New(&log.Config{Output: io.Discard}))

	_, err = client.Get(context.Background(), "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error for untrusted certificate")
	}

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if transport.Kind != errors.KindTLS {
		t.Errorf("expected tls kind, got %q", transport.Kind)
	}
}

func TestDo_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	cfg, err := config.New(addr, testToken)
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	client := NewClient(cfg, log.New(&log.Config{Output: io.Discard}))

	_, err = client.Get(context.Background(), "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error for closed server")
	}

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if transport.Kind != errors.KindConnection {
		t.Errorf("expected connection kind, got %q", transport.Kind)
	}
}

func TestClassifyStatus_CoversAllErrorStatuses(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	intent := Intent{Method: http.MethodGet, Path: "/projects/42"}

	for status := 400; status <= 599; status++ {
		err := client.classifyStatus(intent, status, http.Header{}, []byte(`{"message": "nope"}`))
		if err == nil {
			t.Fatalf("status %d produced no error", status)
		}

		var want string
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			want = "permission_denied_error"
		case http.StatusNotFound:
			want = "not_found_error"
		case http.StatusTooManyRequests:
			want = "rate_limit_error"
		default:
			want = "api_error"
		}
		if got := errors.Kind(err); got != want {
			t.Errorf("status %d classified as %q, want %q", status, got, want)
		}
	}
}

func TestDo_QueryParametersEncoded(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))

	q := url.Values{}
	q.Set("search", "hello world & goodbye")
	q.Set("per_page", "20")
	_, err := client.Get(context.Background(), "/projects", q)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotQuery.Get("search") != "hello world & goodbye" {
		t.Errorf("query parameter mangled: %q", gotQuery.Get("search"))
	}
}

func TestValidateIntent(t *testing.T) {
	tests := []struct {
		name    string
		intent  Intent
		wantErr bool
	}{
		{"valid get", Intent{Method: "GET", Path: "/projects"}, false},
		{"valid delete", Intent{Method: "DELETE", Path: "/projects/1"}, false},
		{"bad method", Intent{Method: "PATCH", Path: "/projects"}, true},
		{"relative path", Intent{Method: "GET", Path: "projects"}, true},
		{"control character", Intent{Method: "GET", Path: "/projects/\r\nHost: evil"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIntent(tt.intent)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil {
				var ve *errors.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestDo_InvalidJSONSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not json`))
	}))

	_, err := client.Get(context.Background(), "/projects/1", nil)
	if err == nil {
		t.Fatal("expected error for invalid JSON body")
	}

	var api *errors.APIError
	if !errors.As(err, &api) {
		t.Fatalf("expected APIError, got %T", err)
	}
}
