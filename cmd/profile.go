package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/naka-gawa/contrib-graph/internal/gateway"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Outputs the public profile of a user as JSON",
	Long: `Looks up the public profile of a user through the REST API.
GITHUB_TOKEN is optional and only raises the rate limit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		profiles, err := gateway.NewProfileGateway(a.cfg.Profile(), a.logger)
		if err != nil {
			return fmt.Errorf("failed to create profile gateway: %w", err)
		}
		profile, err := profiles.FetchProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		jsonData, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
