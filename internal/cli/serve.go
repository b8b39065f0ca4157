package cli

import (
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/ppiankov/coldtrail/internal/mcp"
	"github.com/ppiankov/coldtrail/internal/model"
	"github.com/spf13/cobra"
)

var serveName string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction pipeline as an MCP server over stdio",
	Long: `Serve exposes Coldtrail to MCP clients over stdio:
- summarize_cases tool: scan one source page and return records with statistics
- cross_check_cases tool: cross-reference a bulletin page against an archive page
- coldtrail://neighborhoods resource: Boston neighborhood centroids

The process reads JSON-RPC from stdin and writes responses to stdout,
so all diagnostics go to stderr.

Example:
  coldtrail serve
  coldtrail serve --name coldtrail-staging`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveName, "name", "Coldtrail", "server name advertised to MCP clients")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	srv := mcp.NewServer(mcp.ServerConfig{
		Config:  cfg,
		Name:    serveName,
		Version: version,
	})

	fmt.Fprintf(os.Stderr, "✓ %s MCP server listening on stdio\n", serveName)

	if err := mcpserver.ServeStdio(srv); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
