package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/naka-gawa/contrib-graph/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var terminalCmd = &cobra.Command{
	Use:   "terminal <username>",
	Short: "Draws one year of contributions in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetString("year")
		if year == "" {
			year = strconv.Itoa(time.Now().Year())
		}
		colorName, _ := cmd.Flags().GetString("color")
		compact, _ := cmd.Flags().GetBool("compact")
		noColor, _ := cmd.Flags().GetBool("no-color")

		result, err := a.assembler.FetchOneYear(cmd.Context(), args[0], year)
		if err != nil {
			return err
		}

		opts := render.TerminalOptions{
			Color:   colorName,
			Compact: compact,
			NoColor: noColor || !term.IsTerminal(int(os.Stdout.Fd())),
		}
		return render.Terminal(cmd.OutOrStdout(), args[0], year, result.Contributions, opts)
	},
}

func init() {
	rootCmd.AddCommand(terminalCmd)
	terminalCmd.Flags().StringP("year", "y", "", "Year to draw (default is the current year)")
	terminalCmd.Flags().StringP("color", "c", "green", fmt.Sprintf("Color: %s", strings.Join(render.TerminalColors(), ", ")))
	terminalCmd.Flags().Bool("compact", false, "Only draw Mon, Wed and Fri")
	terminalCmd.Flags().Bool("no-color", false, "Disable escape sequences")
}
