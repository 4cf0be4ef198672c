package cli

import (
	"fmt"

	"github.com/neilberkman/recrider/cmd/recrider/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing the recording cache",
	Long: `Start an MCP (Model Context Protocol) server over stdio with read-only
tools for the local recording cache: recording_stats, count_in_window,
group_recordings and list_recordings. The server never calls Plaud; run
'recrider sync' to refresh the cache.

Example client configuration:
  {
    "mcpServers": {
      "recrider": {
        "command": "recrider",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	err := mcp.StartServer(mcp.Options{
		DBPath:    cfg.DBPath,
		WorkStart: cfg.WorkStart,
		WorkEnd:   cfg.WorkEnd,
		Version:   rootCmd.Version,
	})
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
