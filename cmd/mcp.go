package cmd

import (
	"github.com/kinetrace/kinetrace/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Kinetrace MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze recordings, look up norms and browse result history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup logs go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, resultStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
