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

// Package gitlab implements the hardened gateway client for the GitLab REST
// API v4. Every tool call passes through Client.Do before it becomes an HTTP
// request, and every response passes back through the classifier before it
// becomes a tool result.
//
// The outcome of a call is the (Result, error) pair: on success the Result
// carries the decoded payload, on failure the error is always one of the
// typed values in pkg/errors with the credential scrubbed from its message.
package gitlab

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/crunchtools/gitlab-mcp/internal/config"
	"github.com/crunchtools/gitlab-mcp/internal/log"
	"github.com/crunchtools/gitlab-mcp/internal/metrics"
	"github.com/crunchtools/gitlab-mcp/pkg/errors"
	"github.com/crunchtools/gitlab-mcp/pkg/secrets"
)

const (
	// authHeader is the single static header carrying the credential. The
	// token is never placed in a query parameter, the URL, or the body.
	authHeader = "PRIVATE-TOKEN"

	userAgent = "gitlab-mcp/1.0"

	tracerName = "github.com/crunchtools/gitlab-mcp/internal/gitlab"
)

// Intent is the fully-specified description of one API call before it is
// sent. Path parameters containing user-controlled identifiers must already
// be percent-encoded by the caller (see internal/validate); the client
// additionally rejects raw control characters.
type Intent struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string

	// Path is the API path relative to the v4 root, e.g. "/projects/group%2Fproj".
	Path string

	// Query holds optional query parameters.
	Query url.Values

	// Body is the optional JSON body payload.
	Body any
}

// Client is the secure transport client and gateway facade. It is safe for
// concurrent use; it holds no mutable cross-call state beyond the pooled
// connections inside http.Transport.
type Client struct {
	cfg      *config.Config
	http     *http.Client
	scrubber *secrets.Scrubber
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder *metrics.Recorder
}

// Option configures optional Client collaborators.
type Option func(*Client)

// WithRecorder attaches a metrics recorder to the client.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates the gateway client from an already-loaded Configuration.
// It is constructed once at process start and shared by all tool calls.
func NewClient(cfg *config.Config, logger *slog.Logger, opts ...Option) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	if cfg.InsecureSkipVerify() {
		tlsConfig.InsecureSkipVerify = true
	}
	if pool := cfg.CertPool(); pool != nil {
		tlsConfig.RootCAs = pool
	}

	transport := &http.Transport{
		TLSClientConfig: tlsConfig,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	scrubber := secrets.NewScrubber()
	scrubber.Add(cfg.Token())

	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			// Client.Timeout covers the full cycle: connect, send, receive.
			Timeout:   cfg.Timeout(),
			Transport: transport,
		},
		scrubber: scrubber,
		logger:   log.WithComponent(logger, "gitlab_client"),
		tracer:   otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do executes one API call: exactly one outbound request, no retries.
// Retry policy belongs to the caller, which knows whether the operation is
// safe to repeat. Every returned error is one of the pkg/errors taxonomy.
func (c *Client) Do(ctx context.Context, intent Intent) (*Result, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "gitlab.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", intent.Method),
			attribute.String("url.path", intent.Path),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := c.doOnce(ctx, intent)
	elapsed := time.Since(start)

	kind := errors.Kind(err)
	c.recorder.Record(ctx, intent.Method, kind, elapsed)

	if err != nil {
		span.SetStatus(codes.Error, kind)
		c.logger.Warn("api request failed",
			slog.String(log.MethodKey, intent.Method),
			slog.String(log.PathKey, intent.Path),
			slog.String(log.ErrorKindKey, kind),
			slog.Int64(log.DurationKey, elapsed.Milliseconds()),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", result.StatusCode))
	c.logger.Debug("api request",
		slog.String(log.MethodKey, intent.Method),
		slog.String(log.PathKey, intent.Path),
		slog.Int(log.StatusKey, result.StatusCode),
		slog.Int64(log.DurationKey, elapsed.Milliseconds()),
	)
	return result, nil
}

// doOnce performs the single HTTP round trip.
func (c *Client) doOnce(ctx context.Context, intent Intent) (*Result, error) {
	req, err := c.buildRequest(ctx, intent)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := c.readBounded(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, c.classifyStatus(intent, resp.StatusCode, resp.Header, body)
	}

	return c.decodeSuccess(resp, body)
}

// buildRequest joins the API root with the intent path and attaches the
// credential header.
func (c *Client) buildRequest(ctx context.Context, intent Intent) (*http.Request, error) {
	target := c.cfg.APIRoot() + intent.Path
	if len(intent.Query) > 0 {
		target += "?" + intent.Query.Encode()
	}

	var bodyReader io.Reader
	if intent.Body != nil {
		encoded, err := json.Marshal(intent.Body)
		if err != nil {
			return nil, &errors.ValidationError{
				Field:   "body",
				Message: "is not JSON-encodable",
			}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, intent.Method, target, bodyReader)
	if err != nil {
		return nil, &errors.ValidationError{
			Field:   "path",
			Message: "does not form a valid request URL",
		}
	}

	req.Header.Set(authHeader, c.cfg.Token())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if intent.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// readBounded streams the response body up to the configured ceiling and
// aborts with a typed error once it is exceeded, bounding memory use against
// a misbehaving remote.
func (c *Client) readBounded(body io.Reader) ([]byte, error) {
	max := c.cfg.MaxResponseBytes()
	data, err := io.ReadAll(io.LimitReader(body, max+1))
	if err != nil {
		return nil, c.classifyTransport(err)
	}
	if int64(len(data)) > max {
		return nil, &errors.TransportError{
			Kind:    errors.KindResponseTooLarge,
			Message: "response body exceeded the configured size limit",
		}
	}
	return data, nil
}

// decodeSuccess turns a 2xx response into a Result.
func (c *Client) decodeSuccess(resp *http.Response, body []byte) (*Result, error) {
	// 204 or empty body is a valid success with an empty payload.
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return &Result{StatusCode: resp.StatusCode}, nil
	}

	// Some endpoints return plain text (e.g. job traces).
	if strings.Contains(resp.Header.Get("Content-Type"), "text/plain") {
		return &Result{
			StatusCode: resp.StatusCode,
			Data:       map[string]any{"content": string(body)},
		}, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &errors.APIError{
			StatusCode: resp.StatusCode,
			Message:    "invalid JSON response",
		}
	}

	if items, ok := decoded.([]any); ok {
		return &Result{
			StatusCode: resp.StatusCode,
			Items:      items,
			Pagination: paginationFromHeaders(resp.Header),
		}, nil
	}

	return &Result{StatusCode: resp.StatusCode, Data: decoded}, nil
}

// validateIntent rejects malformed intents before any network activity.
func validateIntent(intent Intent) error {
	switch intent.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return &errors.ValidationError{
			Field:   "method",
			Message: "must be one of GET, POST, PUT, DELETE",
		}
	}

	if !strings.HasPrefix(intent.Path, "/") {
		return &errors.ValidationError{
			Field:   "path",
			Message: "must begin with '/'",
		}
	}

	for _, r := range intent.Path {
		if r < 0x20 || r == 0x7f {
			return &errors.ValidationError{
				Field:   "path",
				Message: "must not contain control characters",
			}
		}
	}

	return nil
}

// Convenience verbs used by the tool wrappers.

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Result, error) {
	return c.Do(ctx, Intent{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, query url.Values) (*Result, error) {
	return c.Do(ctx, Intent{Method: http.MethodPost, Path: path, Query: query, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, Intent{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, Intent{Method: http.MethodDelete, Path: path})
}
