package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/observability"
)

var prepareInventoryCmd = &cobra.Command{
	Use:   "prepare-inventory",
	Short: "Split the full inventory into an expiring batch and the rest",
	Long:  "Randomly selects 5-10 non-staple items from the full inventory snapshot, reduces their quantities and gives them 1-4 days to expire, then writes the expiring batch, the remaining current inventory, and appends the batch to the rolling history file.",
	RunE:  runPrepareInventory,
}

var prepareInventoryFlags commonFlags

func init() {
	prepareInventoryFlags.register(prepareInventoryCmd)
	rootCmd.AddCommand(prepareInventoryCmd)
}

func runPrepareInventory(cmd *cobra.Command, _ []string) error {
	cfg, err := prepareInventoryFlags.resolve(cmd)
	if err != nil {
		return err
	}

	store := inventory.NewStore(cfg.DataDir)
	full, err := store.LoadFull()
	if err != nil {
		return fmt.Errorf("loading full inventory failed: %w", err)
	}

	prepared := inventory.Prepare(full, cfg.RandomSource())

	if err := store.SaveExpiring(prepared.Expiring); err != nil {
		return fmt.Errorf("saving expiring batch failed: %w", err)
	}
	if err := store.SaveCurrent(prepared.Current); err != nil {
		return fmt.Errorf("saving current inventory failed: %w", err)
	}
	if err := store.AppendHistory(prepared.Expiring); err != nil {
		return fmt.Errorf("appending expiring history failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintExpiringBatch(prepared.Expiring)
	}
	fmt.Printf("Prepared %d expiring items (%d remain in current inventory)\n",
		len(prepared.Expiring), len(prepared.Current))
	fmt.Printf("Expiring batch written to %s\n", store.Path(inventory.ExpiringIngredientsFile))
	return nil
}
