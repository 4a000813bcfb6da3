package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/observability"
	"github.com/team4/foodflow/internal/pipeline"
	"github.com/team4/foodflow/internal/places"
)

var findDonationCmd = &cobra.Command{
	Use:   "find-donation",
	Short: "Pick a soup kitchen for today's donation",
	Long:  "Loads the nearby soup kitchen dataset, keeps the five closest, picks one at random and writes best_soup_kitchen.json.",
	RunE:  runFindDonation,
}

var findDonationFlags commonFlags

func init() {
	findDonationFlags.register(findDonationCmd)
	rootCmd.AddCommand(findDonationCmd)
}

func runFindDonation(cmd *cobra.Command, _ []string) error {
	cfg, err := findDonationFlags.resolve(cmd)
	if err != nil {
		return err
	}

	kitchens, err := places.LoadSoupKitchens(filepath.Join(cfg.DataDir, places.SoupKitchensCSV))
	if err != nil {
		return fmt.Errorf("loading soup kitchens failed: %w", err)
	}

	center, err := places.ChooseDonationCenter(kitchens, cfg.RandomSource())
	if err != nil {
		return fmt.Errorf("choosing donation center failed: %w", err)
	}

	path, err := pipeline.WriteArtifact(cfg.ResultsDir, pipeline.BestSoupKitchenFile, center)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintDonationCenter(center)
	}
	fmt.Printf("Chose %s (%.2f km), written to %s\n", center.Name, center.DistanceKm, path)
	return nil
}
