package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/deckplan/internal/render"
	"github.com/spf13/cobra"
)

var (
	genTemplate string
	genContent  string
	genOut      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a .pptx deck from template and content",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerateCmd(); err != nil {
			fmt.Printf("Generation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&genTemplate, "template", "", "Path to the .pptx template")
	generateCmd.Flags().StringVar(&genContent, "content", "", "Path to the content document")
	generateCmd.Flags().StringVar(&genOut, "out", "deck.pptx", "Output .pptx path")
	generateCmd.MarkFlagRequired("template")
	generateCmd.MarkFlagRequired("content")
	rootCmd.AddCommand(generateCmd)
}

func runGenerateCmd() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	plan, err := buildPlan(cfg, log, genTemplate, genContent)
	if err != nil {
		return err
	}

	f, err := os.Create(genOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := render.WritePptx(f, plan.Entries); err != nil {
		return err
	}
	log.Info("deck written", "path", genOut, "slides", len(plan.Entries), "run_id", plan.RunID)

	if len(plan.Report.Skipped) > 0 {
		fmt.Printf("Planned %d of %d slides; %d skipped\n",
			plan.Report.Planned, plan.Report.Submitted, len(plan.Report.Skipped))
	}
	return nil
}
