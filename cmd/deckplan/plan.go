package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	planTemplate string
	planContent  string
	planOut      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the allocation plan without generating a deck",
	Long:  `Analyzes the template, fits the content, and prints the resulting slide plan as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPlanCmd(); err != nil {
			fmt.Printf("Planning failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	planCmd.Flags().StringVar(&planTemplate, "template", "", "Path to the .pptx template")
	planCmd.Flags().StringVar(&planContent, "content", "", "Path to the content document")
	planCmd.Flags().StringVar(&planOut, "out", "", "Write the plan to a file instead of stdout")
	planCmd.MarkFlagRequired("template")
	planCmd.MarkFlagRequired("content")
	rootCmd.AddCommand(planCmd)
}

func runPlanCmd() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	plan, err := buildPlan(cfg, log, planTemplate, planContent)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if planOut == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(planOut, data, 0o644)
}
