package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/contract"
	mcp_internal "github.com/gitpulse/gitpulse/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Workers: 2}
	client := contract.NewLocalGitClient()

	// A nil manager is fine; validation errors fire before any store access
	var mgr contract.PersistenceManager
	s := mcp_internal.NewMCPServer(baseCfg, client, mgr)

	ctx := context.Background()

	t.Run("get_activity_summary invalid since date", func(t *testing.T) {
		tool := s.GetTool("get_activity_summary")
		require.NotNil(t, tool, "Tool get_activity_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_activity_summary",
				Arguments: map[string]any{
					"repo_paths": "/tmp/alpha",
					"since":      "not_a_date",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid since date")
	})

	t.Run("get_activity_summary without repositories", func(t *testing.T) {
		tool := s.GetTool("get_activity_summary")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_activity_summary",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no repositories")
	})

	t.Run("get_activity_periods invalid until date", func(t *testing.T) {
		tool := s.GetTool("get_activity_periods")
		require.NotNil(t, tool, "Tool get_activity_periods should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_activity_periods",
				Arguments: map[string]any{
					"repo_paths": "/tmp/alpha",
					"period":     "weekly",
					"until":      "whenever",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid until date")
	})

	t.Run("get_repositories exists", func(t *testing.T) {
		tool := s.GetTool("get_repositories")
		require.NotNil(t, tool, "Tool get_repositories should exist")
	})
}
