package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/observability"
	"github.com/team4/foodflow/internal/pipeline"
	"github.com/team4/foodflow/internal/schemas"
	"github.com/team4/foodflow/internal/types"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Allocate every expiring ingredient to COOK, SELL or DONATE",
	Long:  "Selects one recipe from top_recipes.json via softmax sampling, assigns every expiring ingredient exactly one action with a human-readable reason, writes final_decision_output.json and prints the three-group summary. --temperature 0 makes the recipe selection deterministic.",
	RunE:  runDecide,
}

var (
	decideFlags           commonFlags
	decideTemperature     float64
	decideSellProbability float64
)

func init() {
	decideFlags.register(decideCmd)
	// Applied after config merging so an explicit 0 means greedy selection
	decideCmd.Flags().Float64Var(&decideTemperature, "temperature", 0, "Softmax temperature for recipe selection (0 = deterministic arg-max)")
	decideCmd.Flags().Float64Var(&decideSellProbability, "sell-probability", 0, "Chance a non-cooked ingredient is sold rather than donated")
	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, _ []string) error {
	cfg, err := decideFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = decideTemperature
	}
	if cmd.Flags().Changed("sell-probability") {
		cfg.SellProbability = decideSellProbability
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	expiring, err := inventory.NewStore(cfg.DataDir).LoadExpiring()
	if err != nil {
		return fmt.Errorf("loading expiring batch failed: %w", err)
	}

	var loaded []types.CandidateRecipe
	if err := pipeline.ReadArtifact(cfg.ResultsDir, pipeline.TopRecipesFile, &loaded); err != nil {
		return err
	}
	candidates, dropped := types.ValidCandidates(loaded)
	for _, n := range dropped {
		fmt.Printf("Warning: skipping malformed recipe candidate %d (missing title)\n", n)
	}

	// Sell and donation targets are optional; their absence shifts the
	// allocation toward DONATE.
	var scores []types.RestaurantScore
	if err := pipeline.ReadArtifact(cfg.ResultsDir, pipeline.TopRestaurantsFile, &scores); err != nil {
		fmt.Printf("Warning: no restaurant scores available: %v\n", err)
	}
	sellTarget := ""
	if len(scores) > 0 {
		sellTarget = scores[0].Name
	}

	var center types.DonationCenter
	donateTarget := ""
	if err := pipeline.ReadArtifact(cfg.ResultsDir, pipeline.BestSoupKitchenFile, &center); err != nil {
		fmt.Printf("Warning: no donation center available: %v\n", err)
	} else {
		donateTarget = center.Name
	}

	rng := cfg.RandomSource()
	universe := ingredient.NewUniverse(expiring)

	selected, err := allocation.SelectRecipe(candidates, universe, rng, cfg.Temperature)
	if err != nil {
		return fmt.Errorf("selecting recipe failed: %w", err)
	}

	decisions, err := allocation.BuildDecisions(universe, selected, sellTarget, donateTarget, rng, cfg.SellProbability)
	if err != nil {
		return fmt.Errorf("building decisions failed: %w", err)
	}

	path, err := pipeline.WriteArtifact(cfg.ResultsDir, pipeline.FinalDecisionFile, decisions)
	if err != nil {
		return err
	}
	if schemaPath := schemas.ResolveSchemaPath("schemas/decision.schema.json"); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			fmt.Printf("Warning: final_decision_output.json failed schema validation: %v\n", err)
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintDecisions(decisions)
	}

	summary := allocation.Summarize(decisions)
	for _, line := range summary.Lines() {
		fmt.Println(line)
	}
	fmt.Printf("Decisions written to %s\n", path)
	return nil
}
