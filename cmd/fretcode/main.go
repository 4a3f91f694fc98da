package main

import (
	"fmt"
	"os"
	"time"

	"fretcode/internal/config"
	"fretcode/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fretcode",
	Short: "fretcode - chord diagram scraper and fingering encoder",
	Long: `fretcode fetches guitar chord diagrams from all-guitar-chords.com and
turns each one into a fingering code: one token per string, low E first,
where a number is the fret and "x" marks a string that is not played.

  fretcode scrape --chord C --chord Am
  fretcode decode saved_page.html`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.Initialize(cfg.Logging)
		if err != nil {
			return err
		}
		logging.BootDebug("Config loaded from %s", configPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Overall operation timeout")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
