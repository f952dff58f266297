package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codectx/internal/config"
	"codectx/internal/extractor"
	"codectx/internal/fetch"
	"codectx/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for function context extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants pull function context directly.

The MCP server:
- Exposes the extract_function and compress_function tools
- Accepts local paths and URLs as source locations
- Communicates via stdio (standard MCP transport)

Example:
  codectx mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fetcher := fetch.New(
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
	)

	fmt.Fprintf(os.Stderr, "codectx MCP server %s\n", Version)

	s := mcp.NewServer(extractor.New(), fetcher, Version)
	if err := mcp.ServeStdio(s); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
