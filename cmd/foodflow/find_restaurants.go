package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/observability"
	"github.com/team4/foodflow/internal/pipeline"
	"github.com/team4/foodflow/internal/places"
	"github.com/team4/foodflow/internal/restaurants"
	"github.com/team4/foodflow/internal/schemas"
)

var findRestaurantsCmd = &cobra.Command{
	Use:   "find-restaurants",
	Short: "Score nearby restaurants as buyers for the expiring batch",
	Long:  "Loads the nearby restaurant dataset, samples up to 50 and keeps the 20 closest, asks the LLM which would buy the expiring ingredients and writes the scored list to top_restaurants.json.",
	RunE:  runFindRestaurants,
}

var findRestaurantsFlags commonFlags

func init() {
	findRestaurantsFlags.register(findRestaurantsCmd)
	rootCmd.AddCommand(findRestaurantsCmd)
}

func runFindRestaurants(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := findRestaurantsFlags.resolve(cmd)
	if err != nil {
		return err
	}
	apiKey, err := requireAPIKey(cfg)
	if err != nil {
		return err
	}

	expiring, err := inventory.NewStore(cfg.DataDir).LoadExpiring()
	if err != nil {
		return fmt.Errorf("loading expiring batch failed: %w", err)
	}

	nearby, err := places.LoadRestaurants(filepath.Join(cfg.DataDir, places.RestaurantsCSV))
	if err != nil {
		return fmt.Errorf("loading nearby restaurants failed: %w", err)
	}
	shortlist := restaurants.Shortlist(nearby, cfg.RandomSource())

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("creating LLM client failed: %w", err)
	}
	defer client.Close()

	scores, err := restaurants.NewAgent(client).RankBuyers(ctx, expiring, shortlist)
	if err != nil {
		return fmt.Errorf("scoring buyers failed: %w", err)
	}

	path, err := pipeline.WriteArtifact(cfg.ResultsDir, pipeline.TopRestaurantsFile, scores)
	if err != nil {
		return err
	}
	if schemaPath := schemas.ResolveSchemaPath("schemas/top_restaurants.schema.json"); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			fmt.Printf("Warning: top_restaurants.json failed schema validation: %v\n", err)
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRestaurantScores(scores)
	}
	fmt.Printf("Scored %d buyers, written to %s\n", len(scores), path)
	return nil
}
