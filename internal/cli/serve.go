package cli

import (
	"github.com/smartdoc-io/smartdoc/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run smartdoc as an MCP server over stdio",
	Long: `Runs smartdoc as a Model Context Protocol server over stdio, exposing
document analysis, plan application and table editing as tools for MCP
clients.

Tools:
  analyze_document    inspect document structure
  apply_plan          apply a JSON formatting plan
  create_table        append a table to a document
  format_cell         format a single table cell
  merge_cells         merge a table cell region`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return mcpserver.New(logger).Run(version)
}
