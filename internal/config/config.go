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

// Package config resolves credential and endpoint configuration for the
// GitLab gateway. Configuration is loaded exactly once per process, from the
// environment only, and is immutable afterwards. The token is never part of
// any string rendering of the Config.
package config

import (
	"crypto/x509"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

const (
	// DefaultBaseURL is the public GitLab instance, used when GITLAB_URL is unset.
	DefaultBaseURL = "https://gitlab.com"

	// apiVersionPath is the fixed API version segment appended to the base URL.
	apiVersionPath = "/api/v4"

	// DefaultTimeout bounds the full request/response cycle of every call.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponseBytes caps response bodies at 10 MiB.
	DefaultMaxResponseBytes = 10 * 1024 * 1024

	// redactedToken substitutes the credential in every textual rendering.
	redactedToken = "***"
)

// Environment variable names. The credential is accepted from the
// environment only; there is no file- or flag-based token input.
const (
	EnvToken      = "GITLAB_TOKEN"
	EnvBaseURL    = "GITLAB_URL"
	EnvTLSVerify  = "GITLAB_SSL_VERIFY"
	EnvCABundle   = "SSL_CERT_FILE"
)

// Config holds the resolved gateway configuration. Fields are unexported and
// reachable through accessors only, so the token cannot leak via struct
// printing or serialization.
type Config struct {
	token              string
	baseURL            string
	apiRoot            string
	insecureSkipVerify bool
	caBundlePath       string
	caPool             *x509.CertPool
	timeout            time.Duration
	maxResponseBytes   int64
}

// Option adjusts non-environment settings, primarily for tests.
type Option func(*Config)

// WithTimeout overrides the request timeout. Non-positive values are ignored
// so a timeout always exists.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxResponseBytes overrides the response size ceiling.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxResponseBytes = n
		}
	}
}

// Load reads configuration from the process environment and validates it.
// It fails with *errors.ConfigError if the token is missing or the base URL
// is malformed or insecure.
func Load(opts ...Option) (*Config, error) {
	token := os.Getenv(EnvToken)

	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cfg, err := New(baseURL, token, opts...)
	if err != nil {
		return nil, err
	}

	verify := strings.ToLower(os.Getenv(EnvTLSVerify))
	switch verify {
	case "false", "0", "no":
		cfg.insecureSkipVerify = true
	}

	if certFile := os.Getenv(EnvCABundle); certFile != "" && !cfg.insecureSkipVerify {
		if err := cfg.loadCABundle(certFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// New constructs a Config from an explicit base URL and token. Load uses it
// after reading the environment; tests use it directly with httptest URLs.
func New(baseURL, token string, opts ...Option) (*Config, error) {
	if token == "" {
		return nil, &errors.ConfigError{
			Key: EnvToken,
			Reason: "environment variable required, create a Personal Access Token at " +
				"https://gitlab.com/-/user_settings/personal_access_tokens",
		}
	}

	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errors.ConfigError{
			Key:    EnvBaseURL,
			Reason: "must be a valid URL with scheme and host (e.g. https://gitlab.com)",
			Cause:  err,
		}
	}

	if parsed.Scheme != "https" && !isLoopbackHost(parsed.Hostname()) {
		return nil, &errors.ConfigError{
			Key:    EnvBaseURL,
			Reason: "must use HTTPS for non-localhost URLs",
		}
	}

	cfg := &Config{
		token:            token,
		baseURL:          baseURL,
		apiRoot:          baseURL + apiVersionPath,
		timeout:          DefaultTimeout,
		maxResponseBytes: DefaultMaxResponseBytes,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg, nil
}

// loadCABundle reads a PEM bundle for private certificate authorities.
func (c *Config) loadCABundle(path string) error {
	pem, err := os.ReadFile(path)
	if err != nil {
		return &errors.ConfigError{
			Key:    EnvCABundle,
			Reason: "cannot read CA bundle file",
			Cause:  err,
		}
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return &errors.ConfigError{
			Key:    EnvCABundle,
			Reason: "CA bundle contains no usable PEM certificates",
		}
	}

	c.caBundlePath = path
	c.caPool = pool
	return nil
}

// isLoopbackHost reports whether host refers to the local machine.
// Loopback hosts are exempt from the HTTPS requirement.
func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// Token returns the credential for placing in the authentication header.
// Call sites must never log or serialize the returned value.
func (c *Config) Token() string { return c.token }

// BaseURL returns the normalized GitLab instance URL.
func (c *Config) BaseURL() string { return c.baseURL }

// APIRoot returns the API v4 root URL requests are joined against.
func (c *Config) APIRoot() string { return c.apiRoot }

// Timeout returns the mandatory per-request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// MaxResponseBytes returns the response body size ceiling.
func (c *Config) MaxResponseBytes() int64 { return c.maxResponseBytes }

// InsecureSkipVerify reports whether TLS verification is disabled.
func (c *Config) InsecureSkipVerify() bool { return c.insecureSkipVerify }

// CertPool returns the custom CA pool, or nil when using system roots.
func (c *Config) CertPool() *x509.CertPool { return c.caPool }

// CABundlePath returns the configured CA bundle path, if any.
func (c *Config) CABundlePath() string { return c.caBundlePath }

// String renders the configuration with the token redacted. This invariant
// is covered by tests and must hold for every future field.
func (c *Config) String() string {
	return fmt.Sprintf("Config(gitlab_url=%s, token=%s)", c.baseURL, redactedToken)
}

// GoString makes %#v formatting safe as well.
func (c *Config) GoString() string { return c.String() }

// LogValue implements slog.LogValuer so a Config logged as an attribute
// never carries the token.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("gitlab_url", c.baseURL),
		slog.String("token", redactedToken),
		slog.Bool("tls_verify", !c.insecureSkipVerify),
		slog.Duration("timeout", c.timeout),
	)
}
