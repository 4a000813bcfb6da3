package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/observability"
	"github.com/team4/foodflow/internal/pipeline"
	"github.com/team4/foodflow/internal/recipes"
	"github.com/team4/foodflow/internal/retrieval"
	"github.com/team4/foodflow/internal/schemas"
)

var findRecipesCmd = &cobra.Command{
	Use:   "find-recipes",
	Short: "Generate three candidate recipes for the expiring batch",
	Long:  "Asks the LLM for three dish ideas covering the expiring batch, grounds each in the stored recipe corpus when a vector store is configured, classifies each dish's ingredient usage and writes the ranked candidate list to top_recipes.json.",
	RunE:  runFindRecipes,
}

var findRecipesFlags commonFlags

func init() {
	findRecipesFlags.register(findRecipesCmd)
	rootCmd.AddCommand(findRecipesCmd)
}

func runFindRecipes(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := findRecipesFlags.resolve(cmd)
	if err != nil {
		return err
	}
	apiKey, err := requireAPIKey(cfg)
	if err != nil {
		return err
	}

	store := inventory.NewStore(cfg.DataDir)
	expiring, err := store.LoadExpiring()
	if err != nil {
		return fmt.Errorf("loading expiring batch failed: %w", err)
	}
	current, err := store.LoadCurrent()
	if err != nil {
		return fmt.Errorf("loading current inventory failed: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("creating LLM client failed: %w", err)
	}
	defer client.Close()

	var retriever *retrieval.Retriever
	if cfg.DatabaseURL != "" {
		recipeStore, err := retrieval.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to vector store: %v\n", err)
			fmt.Printf("Continuing without recipe retrieval...\n")
		} else {
			defer recipeStore.Close()
			retriever = retrieval.NewRetriever(recipeStore, retrieval.NewEmbeddingCache(cfg.RedisAddr), client)
		}
	}

	agent := recipes.NewAgent(client, retriever)
	result, err := agent.FindCandidates(ctx, expiring, current)
	if err != nil {
		return fmt.Errorf("finding candidate recipes failed: %w", err)
	}

	path, err := pipeline.WriteArtifact(cfg.ResultsDir, pipeline.TopRecipesFile, result.Candidates)
	if err != nil {
		return err
	}
	if schemaPath := schemas.ResolveSchemaPath("schemas/top_recipes.schema.json"); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			fmt.Printf("Warning: top_recipes.json failed schema validation: %v\n", err)
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCandidates(result.Candidates)
	}
	fmt.Printf("Wrote %d candidate recipes to %s\n", len(result.Candidates), path)
	return nil
}
