package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/deckplan/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	noCache     bool
	noSummarize bool
	workersFlag int
)

var rootCmd = &cobra.Command{
	Use:   "deckplan",
	Short: "Deckplan fits structured content into PowerPoint templates",
	Long: `Deckplan analyzes a .pptx template, fits slide content to its placeholder
capacities, and either prints the allocation plan or generates the deck.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Skip the template structure cache")
	rootCmd.PersistentFlags().BoolVar(&noSummarize, "no-summarize", false, "Disable free-text summarization")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Parallel allocation workers (0 = from config)")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if noSummarize {
		cfg.UseSummarization = false
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
