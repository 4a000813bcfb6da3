// Package pipeline provides the high-level orchestration for the daily
// surplus-allocation run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/config"
	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/inventory"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/messaging"
	"github.com/team4/foodflow/internal/observability"
	"github.com/team4/foodflow/internal/places"
	"github.com/team4/foodflow/internal/recipes"
	"github.com/team4/foodflow/internal/restaurants"
	"github.com/team4/foodflow/internal/retrieval"
	"github.com/team4/foodflow/internal/schemas"
	"github.com/team4/foodflow/internal/types"
)

// RunOptions holds everything one full run needs. Client and Out exist so
// tests can inject a stub LLM and capture output; both default sensibly.
type RunOptions struct {
	Config config.Config
	Client llm.Client
	Out    io.Writer
}

// RecipeBranchResult holds the outputs of the recipe agent branch.
type RecipeBranchResult struct {
	Candidates []types.CandidateRecipe
	Retrieved  [][]types.RetrievedRecipe
}

// RestaurantBranchResult holds the outputs of the buyer-scoring branch.
type RestaurantBranchResult struct {
	Scores []types.RestaurantScore
}

// logPrefix distinguishes the two concurrent branches in the log output.
type logPrefix string

const (
	prefixRecipes logPrefix = "[Recipes]     "
	prefixBuyers  logPrefix = "[Restaurants] "
)

// Run executes the full daily pipeline: prepare the expiring batch, pick a
// donation center, run the recipe and restaurant branches concurrently,
// allocate every expiring ingredient and compose the outbound messages.
//
// The run's rng is not goroutine safe; every draw happens on the calling
// goroutine, before or after the errgroup section.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	runID := uuid.New()
	rng := cfg.RandomSource()
	printer := observability.NewPrinter(out)

	fmt.Fprintf(out, "Run %s\n", runID)

	// Step 1: prepare the expiring batch from the full inventory snapshot.
	fmt.Fprintf(out, "Step 1/6: Preparing inventory...\n")
	store := inventory.NewStore(cfg.DataDir)
	full, err := store.LoadFull()
	if err != nil {
		return fmt.Errorf("loading full inventory failed: %w", err)
	}

	prepared := inventory.Prepare(full, rng)
	if err := store.SaveExpiring(prepared.Expiring); err != nil {
		return fmt.Errorf("saving expiring batch failed: %w", err)
	}
	if err := store.SaveCurrent(prepared.Current); err != nil {
		return fmt.Errorf("saving current inventory failed: %w", err)
	}
	if err := store.AppendHistory(prepared.Expiring); err != nil {
		fmt.Fprintf(out, "Warning: failed to append expiring history: %v\n", err)
	}
	if cfg.Verbose {
		printer.PrintExpiringBatch(prepared.Expiring)
	}

	// Step 2: pick a donation center. A missing CSV is not fatal; the
	// allocator falls back to its generic donation target.
	fmt.Fprintf(out, "Step 2/6: Choosing donation center...\n")
	var center *types.DonationCenter
	kitchens, err := places.LoadSoupKitchens(filepath.Join(cfg.DataDir, places.SoupKitchensCSV))
	if err != nil {
		fmt.Fprintf(out, "Warning: failed to load soup kitchens: %v\n", err)
	} else {
		center, err = places.ChooseDonationCenter(kitchens, rng)
		if err != nil {
			fmt.Fprintf(out, "Warning: no donation center chosen: %v\n", err)
		}
	}
	if center != nil {
		if _, err := WriteArtifact(cfg.ResultsDir, BestSoupKitchenFile, center); err != nil {
			return err
		}
		if cfg.Verbose {
			printer.PrintDonationCenter(center)
		}
	}

	// The restaurant shortlist consumes rng draws, so build it before the
	// branches start.
	var shortlist []types.NearbyRestaurant
	nearby, err := places.LoadRestaurants(filepath.Join(cfg.DataDir, places.RestaurantsCSV))
	if err != nil {
		fmt.Fprintf(out, "Warning: failed to load nearby restaurants: %v\n", err)
	} else {
		shortlist = restaurants.Shortlist(nearby, rng)
	}

	client := opts.Client
	if client == nil {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("creating LLM client failed: %w", err)
		}
		defer client.Close()
	}

	retriever := connectRetriever(ctx, cfg, client, out)

	fmt.Fprintf(out, "\nStep 3/6: Running recipe and restaurant branches concurrently...\n\n")

	g, gCtx := errgroup.WithContext(ctx)

	var recipeResult *RecipeBranchResult
	var restaurantResult *RestaurantBranchResult
	var recMu, resMu sync.Mutex

	g.Go(func() error {
		result, err := runRecipeBranch(gCtx, client, retriever, prepared, cfg, printer, out)
		if err != nil {
			return fmt.Errorf("recipe branch failed: %w", err)
		}
		recMu.Lock()
		recipeResult = result
		recMu.Unlock()
		return nil
	})

	g.Go(func() error {
		result, err := runRestaurantBranch(gCtx, client, shortlist, prepared.Expiring, cfg, printer, out)
		if err != nil {
			return fmt.Errorf("restaurant branch failed: %w", err)
		}
		resMu.Lock()
		restaurantResult = result
		resMu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// Step 4: allocate every expiring ingredient.
	fmt.Fprintf(out, "\nStep 4/6: Allocating expiring ingredients...\n")

	universe := ingredient.NewUniverse(prepared.Expiring)
	selected, err := allocation.SelectRecipe(recipeResult.Candidates, universe, rng, cfg.Temperature)
	if err != nil {
		return fmt.Errorf("selecting recipe failed: %w", err)
	}

	sellTarget := sellTargetFrom(restaurantResult.Scores)
	donateTarget := ""
	if center != nil {
		donateTarget = center.Name
	}

	decisions, err := allocation.BuildDecisions(universe, selected, sellTarget, donateTarget, rng, cfg.SellProbability)
	if err != nil {
		return fmt.Errorf("building decisions failed: %w", err)
	}

	decisionPath, err := WriteArtifact(cfg.ResultsDir, FinalDecisionFile, decisions)
	if err != nil {
		return err
	}
	validateArtifact("schemas/decision.schema.json", decisionPath, out)
	if cfg.Verbose {
		printer.PrintDecisions(decisions)
	}

	// Step 5: the three-group summary, always printed.
	fmt.Fprintf(out, "\nStep 5/6: Summary\n")
	summary := allocation.Summarize(decisions)
	for _, line := range summary.Lines() {
		fmt.Fprintln(out, line)
	}

	// Step 6: compose outbound messages. Draft failures are warnings; the
	// allocation artifact is already on disk.
	fmt.Fprintf(out, "\nStep 6/6: Composing messages...\n")
	if err := composeMessages(ctx, client, cfg, decisions, recipeResult.Candidates, prepared.Expiring, out); err != nil {
		fmt.Fprintf(out, "Warning: composing messages failed: %v\n", err)
	}

	fmt.Fprintf(out, "\nDone. Artifacts written to %s\n", cfg.ResultsDir)
	return nil
}

// connectRetriever wires the vector store and embedding cache when a database
// URL is configured. Failures degrade to a nil retriever; retrieval grounds
// the narrative, not the allocation.
func connectRetriever(ctx context.Context, cfg config.Config, embedder retrieval.Embedder, out io.Writer) *retrieval.Retriever {
	if cfg.DatabaseURL == "" {
		return nil
	}

	recipeStore, err := retrieval.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(out, "Warning: failed to connect to vector store: %v\n", err)
		fmt.Fprintf(out, "Continuing without recipe retrieval...\n")
		return nil
	}

	cache := retrieval.NewEmbeddingCache(cfg.RedisAddr)
	return retrieval.NewRetriever(recipeStore, cache, embedder)
}

// runRecipeBranch asks the agent for ranked candidate recipes and writes the
// top_recipes artifact.
func runRecipeBranch(ctx context.Context, client llm.Client, retriever *retrieval.Retriever, prepared *inventory.PrepareResult, cfg config.Config, printer *observability.Printer, out io.Writer) (*RecipeBranchResult, error) {
	prefix := prefixRecipes

	fmt.Fprintf(out, "%sGenerating candidate recipes...\n", prefix)
	agent := recipes.NewAgent(client, retriever)
	result, err := agent.FindCandidates(ctx, prepared.Expiring, prepared.Current)
	if err != nil {
		return nil, err
	}

	path, err := WriteArtifact(cfg.ResultsDir, TopRecipesFile, result.Candidates)
	if err != nil {
		return nil, err
	}
	validateArtifact("schemas/top_recipes.schema.json", path, out)

	if cfg.Verbose {
		printer.PrintCandidates(result.Candidates)
	}
	fmt.Fprintf(out, "%sDone: %d candidates.\n", prefix, len(result.Candidates))

	return &RecipeBranchResult{
		Candidates: result.Candidates,
		Retrieved:  result.Retrieved,
	}, nil
}

// runRestaurantBranch scores the shortlist as buyers for the expiring batch
// and writes the top_restaurants artifact. An empty shortlist produces an
// empty score list, which downstream treats as "no sell target".
func runRestaurantBranch(ctx context.Context, client llm.Client, shortlist []types.NearbyRestaurant, expiring []types.Ingredient, cfg config.Config, printer *observability.Printer, out io.Writer) (*RestaurantBranchResult, error) {
	prefix := prefixBuyers

	fmt.Fprintf(out, "%sScoring %d nearby restaurants as buyers...\n", prefix, len(shortlist))
	agent := restaurants.NewAgent(client)
	scores, err := agent.RankBuyers(ctx, expiring, shortlist)
	if err != nil {
		return nil, err
	}

	path, err := WriteArtifact(cfg.ResultsDir, TopRestaurantsFile, scores)
	if err != nil {
		return nil, err
	}
	validateArtifact("schemas/top_restaurants.schema.json", path, out)

	if cfg.Verbose {
		printer.PrintRestaurantScores(scores)
	}
	fmt.Fprintf(out, "%sDone: %d buyers scored.\n", prefix, len(scores))

	return &RestaurantBranchResult{Scores: scores}, nil
}

// composeMessages writes the kitchen dispatch plus the sell and donation
// outreach messages for the run's decisions.
func composeMessages(ctx context.Context, client llm.Client, cfg config.Config, decisions []types.Decision, candidates []types.CandidateRecipe, expiring []types.Ingredient, out io.Writer) error {
	groups := messaging.GroupDecisions(decisions)

	if title, err := messaging.SelectedRecipeTitle(decisions); err == nil {
		recipe, err := messaging.FindRecipe(title, candidates)
		if err != nil {
			return fmt.Errorf("finding dispatched recipe: %w", err)
		}
		dispatch := messaging.ComposeKitchenDispatch(recipe)
		path, err := WriteMessage(cfg.ResultsDir, KitchenDispatchFile, dispatch)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Kitchen dispatch written to %s\n", path)
	}

	drafter := messaging.NewDrafter(client, cfg.Brand, cfg.City, cfg.ContactPhone)

	if groups.SellTarget != "" {
		lines := messaging.ItemLines(groups.SellItems, expiring)
		offer, err := drafter.DraftSellOffer(ctx, groups.SellTarget, lines)
		if err != nil {
			return fmt.Errorf("drafting sell offer: %w", err)
		}
		if offer != "" {
			path, err := WriteMessage(cfg.ResultsDir, SellOfferFile, offer)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Sell offer written to %s\n", path)
		}
	}

	if groups.DonateTarget != "" {
		lines := messaging.ItemLines(groups.DonateItems, expiring)
		offer, err := drafter.DraftDonationOffer(ctx, groups.DonateTarget, lines)
		if err != nil {
			return fmt.Errorf("drafting donation offer: %w", err)
		}
		if offer != "" {
			path, err := WriteMessage(cfg.ResultsDir, DonationOfferFile, offer)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Donation offer written to %s\n", path)
		}
	}

	return nil
}

// sellTargetFrom returns the top-scored buyer name, or "" when nothing was
// scored.
func sellTargetFrom(scores []types.RestaurantScore) string {
	if len(scores) == 0 {
		return ""
	}
	return scores[0].Name
}

// validateArtifact checks a written artifact against its JSON schema. Schema
// failures never abort the run.
func validateArtifact(schemaRelPath, artifactPath string, out io.Writer) {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, artifactPath); err != nil {
		fmt.Fprintf(out, "Warning: %s failed schema validation: %v\n", filepath.Base(artifactPath), err)
	}
}
