package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/messaging"
	"github.com/team4/foodflow/internal/pipeline"
	"github.com/team4/foodflow/internal/types"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Compose the kitchen dispatch and outreach messages",
	Long:  "Reads final_decision_output.json and composes the kitchen dispatch for the cooked recipe plus LLM-drafted sell and donation offers, each carrying the restaurant's contact phone. Messages are written under results/messages/.",
	RunE:  runDispatch,
}

var dispatchFlags commonFlags

func init() {
	dispatchFlags.register(dispatchCmd)
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := dispatchFlags.resolve(cmd)
	if err != nil {
		return err
	}

	var decisions []types.Decision
	if err := pipeline.ReadArtifact(cfg.ResultsDir, pipeline.FinalDecisionFile, &decisions); err != nil {
		return err
	}
	var candidates []types.CandidateRecipe
	if err := pipeline.ReadArtifact(cfg.ResultsDir, pipeline.TopRecipesFile, &candidates); err != nil {
		return err
	}
	expiring, err := inventory.NewStore(cfg.DataDir).LoadExpiring()
	if err != nil {
		return fmt.Errorf("loading expiring batch failed: %w", err)
	}

	groups := messaging.GroupDecisions(decisions)

	if title, err := messaging.SelectedRecipeTitle(decisions); err == nil {
		recipe, err := messaging.FindRecipe(title, candidates)
		if err != nil {
			return fmt.Errorf("finding dispatched recipe: %w", err)
		}
		path, err := pipeline.WriteMessage(cfg.ResultsDir, pipeline.KitchenDispatchFile, messaging.ComposeKitchenDispatch(recipe))
		if err != nil {
			return err
		}
		fmt.Printf("Kitchen dispatch written to %s\n", path)
	} else {
		fmt.Printf("No COOK decision; skipping kitchen dispatch: %v\n", err)
	}

	if groups.SellTarget == "" && groups.DonateTarget == "" {
		return nil
	}

	apiKey, err := requireAPIKey(cfg)
	if err != nil {
		return err
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("creating LLM client failed: %w", err)
	}
	defer client.Close()

	drafter := messaging.NewDrafter(client, cfg.Brand, cfg.City, cfg.ContactPhone)

	if groups.SellTarget != "" {
		offer, err := drafter.DraftSellOffer(ctx, groups.SellTarget, messaging.ItemLines(groups.SellItems, expiring))
		if err != nil {
			return fmt.Errorf("drafting sell offer: %w", err)
		}
		path, err := pipeline.WriteMessage(cfg.ResultsDir, pipeline.SellOfferFile, offer)
		if err != nil {
			return err
		}
		fmt.Printf("Sell offer for %s written to %s\n", groups.SellTarget, path)
	}

	if groups.DonateTarget != "" {
		offer, err := drafter.DraftDonationOffer(ctx, groups.DonateTarget, messaging.ItemLines(groups.DonateItems, expiring))
		if err != nil {
			return fmt.Errorf("drafting donation offer: %w", err)
		}
		path, err := pipeline.WriteMessage(cfg.ResultsDir, pipeline.DonationOfferFile, offer)
		if err != nil {
			return err
		}
		fmt.Printf("Donation offer for %s written to %s\n", groups.DonateTarget, path)
	}

	return nil
}
