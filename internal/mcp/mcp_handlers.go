package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.PersistenceManager
}

// configFromRequest copies the base config and applies request overrides.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := *h.baseCfg

	if paths := request.GetString("repo_paths", ""); paths != "" {
		cfg.Repos = nil
		for _, p := range strings.Split(paths, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Repos = append(cfg.Repos, p)
			}
		}
	}
	if email := request.GetString("email", ""); email != "" {
		cfg.Author = contract.AuthorFilter{Email: email}
	}

	now := time.Now()
	if since := request.GetString("since", ""); since != "" {
		t, err := contract.ParseDate(since, now)
		if err != nil {
			return nil, fmt.Errorf("invalid since date: %w", err)
		}
		cfg.StartTime = t
	}
	if until := request.GetString("until", ""); until != "" {
		t, err := contract.ParseDate(until, now)
		if err != nil {
			return nil, fmt.Errorf("invalid until date: %w", err)
		}
		cfg.EndTime = t
	}

	if cfg.Workers <= 0 {
		cfg.Workers = schema.DefaultWorkers
	}
	return &cfg, nil
}

// runAnalysis executes the repository analysis for one tool call.
func (h *toolHandler) runAnalysis(ctx context.Context, request mcp.CallToolRequest) (*core.Analyzer, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return nil, err
	}
	return core.ExecuteAnalysis(ctx, cfg, h.client, h.mgr)
}

func (h *toolHandler) handleGetActivitySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analyzer, err := h.runAnalysis(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analyzer.TotalStats(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetActivityPeriods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var strategy core.PeriodStrategy
	var count int
	switch request.GetString("period", "weekly") {
	case "daily":
		strategy, count = core.DailyPeriod{}, schema.DefaultDailyDays
	case "monthly":
		strategy, count = core.MonthlyPeriod{}, schema.DefaultMonthlyMonths
	default:
		strategy, count = core.WeeklyPeriod{}, schema.DefaultWeeklyWeeks
	}
	if n := request.GetInt("count", 0); n > 0 {
		count = n
	}

	analyzer, err := h.runAnalysis(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	summaries := analyzer.Activity(strategy, count)
	payload := struct {
		Periods []schema.ActivitySummary `json:"periods"`
		Cadence schema.CadenceStats      `json:"cadence"`
	}{
		Periods: summaries,
		Cadence: core.Cadence(summaries),
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analyzer, err := h.runAnalysis(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	repos := analyzer.Repos()
	// Commit lists would dwarf the payload; assistants want the rollups.
	out := make([]schema.RepoStats, len(repos))
	copy(out, repos)
	for i := range out {
		out[i].Commits = nil
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCommits > out[j].TotalCommits })

	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
