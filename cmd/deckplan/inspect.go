package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <template.pptx>",
	Short: "Show the analyzed structure of a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspectCmd(args[0]); err != nil {
			fmt.Printf("Inspection failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspectCmd(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := analyzeTemplate(cfg, newLogger(), path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structure: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
