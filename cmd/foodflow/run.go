package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full daily allocation pipeline end-to-end",
	Long: `Orchestrates the entire daily simulation: inventory preparation -> donation center -> recipe and restaurant branches (concurrent) -> allocation -> summary -> messages.

Configuration can be loaded from a JSON file using --config. Environment variables override config file values, and command-line flags override both.`,
	RunE: runPipelineCmd,
}

var (
	runFlags           commonFlags
	runTemperature     float64
	runSellProbability float64
)

func init() {
	runFlags.register(runCommand)
	// Applied after config merging so an explicit 0 means greedy selection
	runCommand.Flags().Float64Var(&runTemperature, "temperature", 0, "Softmax temperature for recipe selection (0 = deterministic arg-max)")
	runCommand.Flags().Float64Var(&runSellProbability, "sell-probability", 0, "Chance a non-cooked ingredient is sold rather than donated")
	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := runFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = runTemperature
	}
	if cmd.Flags().Changed("sell-probability") {
		cfg.SellProbability = runSellProbability
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := requireAPIKey(cfg); err != nil {
		return err
	}

	if err := pipeline.Run(context.Background(), pipeline.RunOptions{Config: cfg}); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	return nil
}
