// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/contrib-graph/internal/config"
	"github.com/naka-gawa/contrib-graph/internal/gateway"
	"github.com/naka-gawa/contrib-graph/internal/parser"
	"github.com/naka-gawa/contrib-graph/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "contrib-graph",
	Short: "A CLI tool to scrape and render public contribution calendars.",
	Long: `contrib-graph reads the public contribution calendar of a GitHub user,
one page per year, and outputs the daily records as JSON, a terminal graph,
an SVG image or summary statistics. It can also serve the same data over HTTP
or as MCP tools.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is .contrib-graph.yaml in the working or home directory)")
	rootCmd.PersistentFlags().String("base-url", gateway.DefaultBaseURL, "Origin the contribution pages are fetched from")
	rootCmd.PersistentFlags().Duration("timeout", gateway.DefaultConfig().Timeout, "Timeout of a single page request")
}

// app holds the dependencies shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    *log.Logger
	assembler *usecase.Assembler
}

// newApp resolves the configuration for cmd and wires the scraping pipeline.
func newApp(cmd *cobra.Command) (*app, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}

	v := viper.New()
	if err := bindFlags(v, cmd.Flags(), "base-url", "timeout", "addr"); err != nil {
		return nil, err
	}
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	fetcher, err := gateway.NewPageFetcher(cfg.Gateway(), nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create page fetcher: %w", err)
	}
	p := parser.New(fetcher.BaseURL(), cfg.LevelPalette())

	return &app{
		cfg:       cfg,
		logger:    logger,
		assembler: usecase.NewAssembler(fetcher, p, logger),
	}, nil
}

// bindFlags binds the named flags that exist on flags to the matching config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
