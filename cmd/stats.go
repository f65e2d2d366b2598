package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/usecase"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Summarizes streaks, monthly totals and daily statistics",
	Long: `Computes streaks, monthly totals and daily-count statistics over every
available year of a user's calendar, or over a single year with --year.
The result is printed as a table, or as JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetString("year")
		asJSON, _ := cmd.Flags().GetBool("json")

		var days []domain.DayRecord
		if year != "" {
			result, err := a.assembler.FetchOneYear(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			days = result.Contributions
		} else {
			years, err := a.assembler.FetchYears(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, y := range years {
				days = append(days, y.Contributions...)
			}
		}
		metrics := usecase.ComputeMetrics(days)

		if asJSON {
			jsonData, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal results to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Metric", "Value"})
		if err := table.Bulk(metricRows(metrics)); err != nil {
			return err
		}
		return table.Render()
	},
}

func metricRows(m domain.Metrics) [][]string {
	rows := [][]string{
		{"Days", humanize.Comma(int64(m.Days))},
		{"Active days", humanize.Comma(int64(m.ActiveDays))},
		{"Contributions", humanize.Comma(int64(m.Contributions))},
		{"Longest streak", streakText(m.LongestStreak)},
		{"Current streak", streakText(m.CurrentStreak)},
	}
	if m.FirstActive != nil {
		rows = append(rows, []string{"First active", m.FirstActive.Date})
	}
	if m.MostActive != nil {
		rows = append(rows, []string{"Most active", fmt.Sprintf("%s (%s)", m.MostActive.Date, humanize.Comma(int64(m.MostActive.Count)))})
	}
	rows = append(rows,
		[]string{"Daily mean", strconv.FormatFloat(m.DailyMean, 'f', 2, 64)},
		[]string{"Daily median", strconv.FormatFloat(m.DailyMedian, 'f', 2, 64)},
		[]string{"Daily p90", strconv.FormatFloat(m.DailyP90, 'f', 2, 64)},
		[]string{"Daily max", strconv.FormatFloat(m.DailyMax, 'f', 0, 64)},
	)
	for _, mt := range m.Monthly {
		rows = append(rows, []string{time.Month(mt.Month).String(), humanize.Comma(int64(mt.Contributions))})
	}
	return rows
}

func streakText(s domain.Streak) string {
	if s.Length == 0 {
		return "0 days"
	}
	return fmt.Sprintf("%d days (%s to %s)", s.Length, s.Start, s.End)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("year", "y", "", "Only summarize this year")
	statsCmd.Flags().Bool("json", false, "Output the metrics as JSON")
}
