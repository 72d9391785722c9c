package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/iocache"
	"github.com/gitpulse/gitpulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GitPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to query Git activity via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		// Suppress the normal progress logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		cfg.Quiet = true
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalGitClient(), iocache.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
