package cmd

import (
	"github.com/naka-gawa/contrib-graph/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Runs an MCP server on standard input and output",
	Long: `Runs a Model Context Protocol server over stdio exposing the list_years,
get_contributions and get_terminal_graph tools. Logs go to standard error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return mcpserver.New(a.assembler, version).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
