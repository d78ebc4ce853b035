// Package cmd defines the command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/config"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/logging"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "beasiswa-scheduler",
	Short: "Scholarship scraping scheduler service",
	Long: `beasiswa-scheduler runs the scholarship scraping pipeline on a daily
schedule and exposes an HTTP control surface for the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.Logging.Development)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
}
