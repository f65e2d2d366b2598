package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/spf13/cobra"
)

var contributionsCmd = &cobra.Command{
	Use:   "contributions <username>",
	Short: "Outputs daily contribution records as JSON",
	Long: `Fetches every available year of a user's contribution calendar and outputs
the assembled dataset as JSON. --format nested groups days by year, month and
day; --year restricts the output to a single year.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetString("year")
		format, _ := cmd.Flags().GetString("format")

		var result any
		if year != "" {
			result, err = a.assembler.FetchOneYear(cmd.Context(), args[0], year)
		} else {
			shape, perr := domain.ParseShape(format)
			if perr != nil {
				return perr
			}
			result, err = a.assembler.FetchAllYears(cmd.Context(), args[0], shape)
		}
		if err != nil {
			return err
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contributionsCmd)
	contributionsCmd.Flags().StringP("year", "y", "", "Only output this year (e.g. 2023)")
	contributionsCmd.Flags().StringP("format", "f", string(domain.ShapeFlat), "Dataset shape: flat or nested")
}
