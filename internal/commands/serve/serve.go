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

package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crunchtools/gitlab-mcp/internal/commands/shared"
	"github.com/crunchtools/gitlab-mcp/internal/config"
	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/log"
	mcpserver "github.com/crunchtools/gitlab-mcp/internal/mcp/server"
	"github.com/crunchtools/gitlab-mcp/internal/metrics"
	"github.com/crunchtools/gitlab-mcp/internal/tracing"
	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// options holds the serve command's flag values.
type options struct {
	logLevel       string
	logFormat      string
	callsPerMinute int
}

// NewCommand creates the serve command.
func NewCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GitLab MCP server on stdio",
		Long: `Start the GitLab MCP (Model Context Protocol) server.

The server exposes GitLab operations (projects, issues, merge requests,
pipelines, search, and more) as tools that AI coding assistants can call.
It communicates over stdio; all logs go to stderr.

Credentials come from the environment:
  GITLAB_TOKEN        Personal Access Token (required)
  GITLAB_URL          Base URL of the GitLab instance (default: https://gitlab.com)
  GITLAB_SSL_VERIFY   Set to "false" to skip TLS verification (not recommended)
  SSL_CERT_FILE       Path to a custom CA bundle for self-hosted instances

Configuration example for an MCP client:
  {
    "mcpServers": {
      "gitlab": {
        "command": "gitlab-mcp",
        "args": ["serve"],
        "env": {"GITLAB_TOKEN": "glpat-..."}
      }
    }
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	registerFlags(cmd.Flags(), &opts)

	return cmd
}

// registerFlags binds the serve flags onto the given flag set.
func registerFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.logLevel, "log-level", "", "Logging verbosity (debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log output format (json, text)")
	fs.IntVar(&opts.callsPerMinute, "calls-per-minute", 0, "Sustained tool-call rate limit (default: 120)")
}

func run(opts options) error {
	logCfg := log.FromEnv()
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		logCfg.Format = log.Format(opts.logFormat)
	}
	logger := log.New(logCfg)

	versionStr, _, _ := shared.GetVersion()

	telemetry, err := tracing.Setup("gitlab-mcp", versionStr)
	if err != nil {
		return errors.Wrap(err, "failed to set up telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Fail fast on missing or invalid configuration; the process must not
	// start without a usable credential.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	startup := []any{
		slog.String("gitlab_url", cfg.BaseURL()),
		slog.String("token", log.SanitizeAPIKey(cfg.Token())),
	}
	if cfg.CABundlePath() != "" {
		startup = append(startup, slog.String("ca_bundle", cfg.CABundlePath()))
	}
	logger.Info("configuration loaded", startup...)

	recorder, err := metrics.NewRecorder()
	if err != nil {
		return errors.Wrap(err, "failed to create metrics recorder")
	}

	client := gitlab.NewClient(cfg, logger, gitlab.WithRecorder(recorder))

	srv, err := mcpserver.NewServer(mcpserver.Config{
		Name:           "gitlab-mcp",
		Version:        versionStr,
		Client:         client,
		Logger:         logger,
		CallsPerMinute: opts.callsPerMinute,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create MCP server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived shutdown signal, shutting down...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		return errors.Wrap(err, "MCP server error")
	}

	return nil
}
