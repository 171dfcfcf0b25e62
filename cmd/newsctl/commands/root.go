// Package commands implements the newsctl command-line interface, which runs
// the scraper and the article queries directly against the database.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	infraconfig "github.com/mai-repo/Newscraper/infrastructure/config"
	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/app"
	"github.com/mai-repo/Newscraper/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool
)

// NewRootCommand builds the newsctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "Scrape and query stored news articles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newScrapeCommand(),
		newNewsCommand(),
		newHeadlinesCommand(),
		newSearchCommand(),
		newReindexCommand(),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// withApp loads configuration, connects and runs fn with the wired app.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, out io.Writer) error) error {
	path := cfgFile
	if path == "" {
		path = infraconfig.GetConfigPath("config.yml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return fmt.Errorf("validate config: %w", validationErr)
	}

	logCfg := cfg.Logging
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.Level = "warn"
	if debug {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(cmd.Context(), a, cmd.OutOrStdout())
}
