package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tally/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can count
taxonomy keywords in text and local documents.

Tools:
  count_keywords   count a taxonomy in text or a file
  list_taxonomies  list stored taxonomies

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode (for desktop assistants)
  tally mcp

  # HTTP mode (for MCP Inspector, remote access)
  tally mcp --http :8080

Assistant configuration:
  {
    "mcpServers": {
      "tally": {
        "command": "/path/to/tally",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio (e.g. :8080)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if tallyService == nil || taxonomyService == nil {
		return errors.New("tally service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Tally:    tallyService,
		Taxonomy: taxonomyService,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", displayAddr(mcpHTTPAddr))
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
