package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/retrieval"
	"github.com/team4/foodflow/internal/types"
)

var loadRecipesCmd = &cobra.Command{
	Use:   "load-recipes",
	Short: "Upload a recipe corpus into the vector store",
	Long:  "Reads a JSON array of recipes, embeds each one (title, ingredients and instructions) and upserts it into the pgvector-backed recipe store. Recipes already present, keyed by file and index, are skipped.",
	RunE:  runLoadRecipes,
}

var (
	loadRecipesFlags commonFlags
	loadRecipesInput string
)

func init() {
	loadRecipesFlags.register(loadRecipesCmd)
	loadRecipesCmd.Flags().StringVarP(&loadRecipesInput, "in", "i", "", "Path to recipes JSON file (required)")
	if err := loadRecipesCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(loadRecipesCmd)
}

func runLoadRecipes(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadRecipesFlags.resolve(cmd)
	if err != nil {
		return err
	}
	apiKey, err := requireAPIKey(cfg)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or `database_url` config value is required")
	}

	data, err := os.ReadFile(loadRecipesInput)
	if err != nil {
		return fmt.Errorf("failed to read recipes file: %w", err)
	}
	var corpus []types.StoredRecipe
	if err := json.Unmarshal(data, &corpus); err != nil {
		return fmt.Errorf("failed to parse recipes JSON: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("creating LLM client failed: %w", err)
	}
	defer client.Close()

	store, err := retrieval.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to vector store failed: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("preparing vector store schema failed: %w", err)
	}

	cache := retrieval.NewEmbeddingCache(cfg.RedisAddr)
	defer cache.Close()

	retriever := retrieval.NewRetriever(store, cache, client)
	fileKey := filepath.Base(loadRecipesInput)
	uploaded, err := retriever.Upload(ctx, fileKey, corpus)
	if err != nil {
		return fmt.Errorf("uploading recipes failed: %w", err)
	}

	fmt.Printf("Uploaded %d of %d recipes from %s\n", uploaded, len(corpus), loadRecipesInput)
	return nil
}
