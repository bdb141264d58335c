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

// Package server implements the MCP server that exposes GitLab operations as
// agent tools over stdio. Every tool call is rate limited, tagged with a
// correlation ID, and rendered to the agent as pretty-printed JSON; failures
// surface as tool errors with the message already scrubbed by the gateway.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/log"
	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// Server wraps the MCP server and the GitLab gateway client.
type Server struct {
	mcpServer *server.MCPServer
	name      string
	version   string
	limiter   *callLimiter
	logger    *slog.Logger
	client    *gitlab.Client
}

// Config configures the MCP server.
type Config struct {
	// Name is the server name announced to the MCP client (default: "gitlab-mcp").
	Name string

	// Version is the build version announced to the MCP client.
	Version string

	// Client is the gateway client shared by all tools. Required.
	Client *gitlab.Client

	// Logger receives per-call structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// CallsPerMinute bounds the sustained tool-call rate (default: 120).
	CallsPerMinute int
}

// NewServer creates an MCP server with all GitLab tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("mcp server requires a gateway client")
	}
	if cfg.Name == "" {
		cfg.Name = "gitlab-mcp"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.CallsPerMinute <= 0 {
		cfg.CallsPerMinute = defaultCallsPerMinute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(cfg.Name, cfg.Version),
		name:      cfg.Name,
		version:   cfg.Version,
		limiter:   newCallLimiter(cfg.CallsPerMinute),
		logger:    log.WithComponent(logger, "mcp_server"),
		client:    cfg.Client,
	}

	s.registerProjectTools()
	s.registerGroupTools()
	s.registerIssueTools()
	s.registerMergeRequestTools()
	s.registerPipelineTools()
	s.registerSearchTools()
	s.registerSnippetTools()
	s.registerWikiTools()
	s.registerMiscTools()

	return s, nil
}

// Run starts the MCP server on stdio and blocks until the transport closes.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", slog.String("version", s.version))

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}

// toolFunc is the inner handler shape shared by all tools: parse arguments,
// call the gateway, return the outcome.
type toolFunc func(ctx context.Context, request mcp.CallToolRequest) (*gitlab.Result, error)

// addTool registers a tool with the common wrapper applied: rate limiting,
// correlation ID, timing, structured logs, and JSON rendering.
func (s *Server) addTool(tool mcp.Tool, fn toolFunc) {
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.limiter.Allow() {
			return errorResponse("Rate limit exceeded. Please try again later."), nil
		}

		correlationID := uuid.NewString()
		logger := log.WithCorrelationID(s.logger, correlationID).With(
			slog.String(log.ToolKey, tool.Name),
		)

		start := time.Now()
		result, err := fn(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Warn("tool call failed",
				slog.String(log.ErrorKindKey, errors.Kind(err)),
				slog.Int64(log.DurationKey, elapsed.Milliseconds()),
			)
			return errorResponse(err.Error()), nil
		}

		logger.Debug("tool call completed",
			slog.Int(log.StatusKey, result.StatusCode),
			slog.Int64(log.DurationKey, elapsed.Milliseconds()),
		)

		rendered, err := json.MarshalIndent(result.Payload(), "", "  ")
		if err != nil {
			return errorResponse("Failed to encode tool result"), nil
		}
		return textResponse(string(rendered)), nil
	})
}

// errorResponse creates an error tool result.
func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// textResponse creates a success tool result with text content.
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// Schema property helpers. The MCP input schemas are plain JSON Schema maps;
// these keep the per-tool registrations readable.

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

func intArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer"},
		"description": description,
	}
}

// pageProps returns the shared pagination properties accepted by list tools.
func pageProps() (map[string]interface{}, map[string]interface{}) {
	return intProp("Page number (default: 1)"),
		intProp("Results per page (default: 20, max: 100)")
}
