package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/places"
)

var fetchSoupKitchensCmd = &cobra.Command{
	Use:   "fetch-soup-kitchens",
	Short: "Refresh the soup kitchen dataset from the Google Places API",
	Long:  "Searches the Google Places API for soup kitchens around the restaurant, computes the distance of each from the kitchen's coordinates and rewrites nearby_soup_kitchens.csv.",
	RunE:  runFetchSoupKitchens,
}

var (
	fetchSoupKitchensFlags  commonFlags
	fetchSoupKitchensAPIKey string
)

func init() {
	fetchSoupKitchensFlags.register(fetchSoupKitchensCmd)
	fetchSoupKitchensCmd.Flags().StringVar(&fetchSoupKitchensAPIKey, "places-api-key", "", "Google Places API key (optional, defaults to GOOGLE_PLACES_API_KEY env var)")
	rootCmd.AddCommand(fetchSoupKitchensCmd)
}

func runFetchSoupKitchens(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := fetchSoupKitchensFlags.resolve(cmd)
	if err != nil {
		return err
	}

	apiKey := fetchSoupKitchensAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_PLACES_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GOOGLE_PLACES_API_KEY environment variable or --places-api-key flag is required")
	}

	fmt.Printf("Searching %d locations for soup kitchens...\n", len(places.DefaultSearchLocations))
	kitchens, err := places.FetchSoupKitchens(ctx, places.DefaultSearchOptions(apiKey))
	if err != nil {
		return fmt.Errorf("fetching soup kitchens failed: %w", err)
	}

	path := filepath.Join(cfg.DataDir, places.SoupKitchensCSV)
	if err := places.SaveSoupKitchensCSV(path, kitchens); err != nil {
		return fmt.Errorf("saving soup kitchens CSV failed: %w", err)
	}

	fmt.Printf("Wrote %d soup kitchens to %s\n", len(kitchens), path)
	return nil
}
