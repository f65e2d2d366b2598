package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var yearsCmd = &cobra.Command{
	Use:   "years <username>",
	Short: "Lists the years that have a contribution calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		links, err := a.assembler.ListYears(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Year", "Path"})
		var data [][]string
		for _, l := range links {
			data = append(data, []string{l.Label, l.Path})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}
