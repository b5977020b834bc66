// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/pkg/tools"
)

const mcpInstructions = `rosa exposes a live ROS1 system. Start broad (rosgraph_get, rosnode_list,
rostopic_list) and narrow down with the *_info tools. Names must be fully
resolved, e.g. /turtle1/cmd_vel. Every result is a snapshot: the graph can
change between calls.`

// runMCPServer starts rosa as an MCP server over stdio. Logs go to stderr.
//
// Flags (for 'rosa serve'):
//   - --metrics-addr: serve Prometheus metrics (overrides metrics_addr)
func runMCPServer(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa serve [options]

Serves every rosa tool over MCP (JSON-RPC on stdin/stdout).
'rosa --mcp' is the same with no options.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	session, cfg := openSession(configPath, globals)
	defer func() { _ = session.Close() }()
	logger := session.Env.Logger

	addr := cfg.MetricsAddr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}
	if addr != "" {
		serveMetrics(addr, logger)
	}

	s := newMCPServer(session.Env)
	logger.Info("mcp.server.start", "master_uri", session.Master.URI(), "tools", len(tools.Registry()))

	errLog := log.New(os.Stderr, "rosa-mcp: ", log.LstdFlags)
	if err := server.ServeStdio(s, server.WithErrorLogger(errLog)); err != nil {
		errors.FatalError(errors.NewInternalError(
			"MCP server stopped",
			err.Error(),
			"Run with --debug and check stderr",
			err,
		), false)
	}
}

// newMCPServer registers every tool of the registry on a new server.
func newMCPServer(env *tools.Env) *server.MCPServer {
	s := server.NewMCPServer(
		"rosa",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(mcpInstructions),
	)
	for _, t := range tools.Registry() {
		s.AddTool(mcpTool(t), toolHandler(env, t.Name))
	}
	return s
}

// mcpTool converts a registry entry to an MCP tool definition.
func mcpTool(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}

		switch p.Type {
		case tools.TypeBoolean:
			if b, ok := p.Default.(bool); ok {
				props = append(props, mcp.DefaultBool(b))
			}
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case tools.TypeInteger:
			if n, ok := p.Default.(int); ok {
				props = append(props, mcp.DefaultNumber(float64(n)))
			}
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case tools.TypeArray:
			props = append(props, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			if d, ok := p.Default.(string); ok {
				props = append(props, mcp.DefaultString(d))
			}
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(t.Name, opts...)
}

// toolHandler runs a tool for an MCP request. Tool failures are returned as
// error results so the agent sees the {"error", "kind"} payload.
func toolHandler(env *tools.Env, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := tools.Call(ctx, env, name, req.GetArguments())
		if result.IsError {
			return mcp.NewToolResultError(result.Render()), nil
		}
		return mcp.NewToolResultText(result.Render()), nil
	}
}

// serveMetrics exposes /metrics on addr in the background.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}
