package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

func TestNew_RequiresToken(t *testing.T) {
	_, err := New("https://gitlab.com", "")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, EnvToken, cfgErr.Key)
}

func TestNew_RequiresHTTPS(t *testing.T) {
	_, err := New("http://gitlab.example.com", "tok")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, EnvBaseURL, cfgErr.Key)
	assert.Contains(t, cfgErr.Reason, "HTTPS")
}

func TestNew_AllowsLoopbackHTTP(t *testing.T) {
	for _, base := range []string{
		"http://localhost:8080",
		"http://127.0.0.1:8080",
		"http://[::1]:8080",
	} {
		t.Run(base, func(t *testing.T) {
			cfg, err := New(base, "tok")
			require.NoError(t, err)
			assert.Equal(t, base, cfg.BaseURL())
		})
	}
}

func TestNew_RejectsMalformedURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "gitlab.com", "https://"} {
		t.Run(base, func(t *testing.T) {
			_, err := New(base, "tok")
			require.Error(t, err)
		})
	}
}

func TestNew_NormalizesTrailingSlash(t *testing.T) {
	cfg, err := New("https://gitlab.example.com/", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.example.com", cfg.BaseURL())
	assert.Equal(t, "https://gitlab.example.com/api/v4", cfg.APIRoot())
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New("https://gitlab.com", "tok")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
	assert.Equal(t, int64(DefaultMaxResponseBytes), cfg.MaxResponseBytes())
	assert.False(t, cfg.InsecureSkipVerify())
	assert.Nil(t, cfg.CertPool())
}

func TestNew_Options(t *testing.T) {
	cfg, err := New("https://gitlab.com", "tok",
		WithTimeout(5*time.Second),
		WithMaxResponseBytes(1024),
	)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, int64(1024), cfg.MaxResponseBytes())

	// A non-positive timeout must not remove the bound.
	cfg, err = New("https://gitlab.com", "tok", WithTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvToken, "envtok")
	t.Setenv(EnvBaseURL, "https://gitlab.example.com")
	t.Setenv(EnvTLSVerify, "")
	t.Setenv(EnvCABundle, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "envtok", cfg.Token())
	assert.Equal(t, "https://gitlab.example.com", cfg.BaseURL())
	assert.False(t, cfg.InsecureSkipVerify())
}

func TestLoad_MissingTokenFailsFast(t *testing.T) {
	t.Setenv(EnvToken, "")

	_, err := Load()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, EnvToken, cfgErr.Key)
}

func TestLoad_TLSVerifyDisabled(t *testing.T) {
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvBaseURL, "https://gitlab.example.com")
	t.Setenv(EnvCABundle, "")

	for _, v := range []string{"false", "0", "no"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv(EnvTLSVerify, v)
			cfg, err := Load()
			require.NoError(t, err)
			assert.True(t, cfg.InsecureSkipVerify())
		})
	}
}

func TestConfig_NeverRendersToken(t *testing.T) {
	const token = "glpat-supersecret"
	cfg, err := New("https://gitlab.com", token)
	require.NoError(t, err)

	for name, rendered := range map[string]string{
		"String":   cfg.String(),
		"GoString": fmt.Sprintf("%#v", cfg),
		"Sprintf":  fmt.Sprintf("%v", cfg),
		"LogValue": cfg.LogValue().String(),
	} {
		assert.NotContains(t, rendered, token, "token leaked via %s", name)
		assert.Contains(t, rendered, "***", "expected redaction marker in %s", name)
	}
}
