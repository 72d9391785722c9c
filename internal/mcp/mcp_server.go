// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gitpulse/gitpulse/internal/contract"
)

// NewMCPServer initializes and configures the GitPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.PersistenceManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GitPulse Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: get_activity_summary ---
	s.AddTool(mcp.NewTool("get_activity_summary",
		mcp.WithDescription("Analyze git history across repositories and return aggregated contribution statistics."),
		mcp.WithString("repo_paths", mcp.Description("Comma-separated repository paths (defaults to the configured repositories).")),
		mcp.WithString("since", mcp.Description("Only include commits after this date (YYYY-MM-DD, month name, or 'N weeks ago).")),
		mcp.WithString("until", mcp.Description("Only include commits before this date.")),
		mcp.WithString("email", mcp.Description("Filter commits by author email.")),
	), h.handleGetActivitySummary)

	// --- 2. Tool: get_activity_periods ---
	s.AddTool(mcp.NewTool("get_activity_periods",
		mcp.WithDescription("Return per-period commit activity with cadence statistics."),
		mcp.WithString("period", mcp.Description("Period grouping (daily, weekly, monthly). Defaults to 'weekly'."), mcp.Enum("daily", "weekly", "monthly")),
		mcp.WithNumber("count", mcp.Description("Number of periods to return, newest first.")),
		mcp.WithString("repo_paths", mcp.Description("Comma-separated repository paths.")),
		mcp.WithString("since", mcp.Description("Only include commits after this date.")),
		mcp.WithString("until", mcp.Description("Only include commits before this date.")),
	), h.handleGetActivityPeriods)

	// --- 3. Tool: get_repositories ---
	s.AddTool(mcp.NewTool("get_repositories",
		mcp.WithDescription("Return per-repository contribution statistics sorted by commit count."),
		mcp.WithString("repo_paths", mcp.Description("Comma-separated repository paths.")),
		mcp.WithString("since", mcp.Description("Only include commits after this date.")),
		mcp.WithString("until", mcp.Description("Only include commits before this date.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of repositories returned.")),
	), h.handleGetRepositories)

	return s
}

// StartMCPServer starts the GitPulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, mgr contract.PersistenceManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
