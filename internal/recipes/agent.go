package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/prompts"
	"github.com/team4/foodflow/internal/retrieval"
	"github.com/team4/foodflow/internal/types"
)

const (
	// dishCount is how many dish candidates one run works with.
	dishCount = 3

	// maxGenerateRetries bounds re-prompting when the model returns the
	// wrong number of dishes.
	maxGenerateRetries = 3

	// generationTemperature keeps dish ideas varied between runs.
	generationTemperature = 0.7
)

// Agent turns the expiring batch into ranked candidate recipes.
type Agent struct {
	client    llm.Client
	retriever *retrieval.Retriever
}

// NewAgent wires a recipe agent. The retriever may be nil; corpus grounding
// is then skipped.
func NewAgent(client llm.Client, retriever *retrieval.Retriever) *Agent {
	return &Agent{client: client, retriever: retriever}
}

// BuildQuery composes the chef prompt from the expiring batch and the
// current inventory.
func BuildQuery(expiring, current []types.Ingredient) string {
	template := prompts.MustGet("recipes.json", "dish_generation")
	return prompts.Format(template, map[string]string{
		"ExpiringList":  joinNames(expiring),
		"InventoryList": joinNames(current),
	})
}

// GenerateDishes asks the chef model for exactly three dishes, retrying when
// the response parses into the wrong count.
func (a *Agent) GenerateDishes(ctx context.Context, expiring, current []types.Ingredient) ([]Dish, error) {
	query := BuildQuery(expiring, current)

	var lastErr error
	for attempt := 1; attempt <= maxGenerateRetries; attempt++ {
		response, err := a.client.GenerateContent(ctx, query, llm.TierStandard, generationTemperature)
		if err != nil {
			lastErr = err
			continue
		}

		dishes := ParseDishes(response)
		if len(dishes) == dishCount {
			return dishes, nil
		}
		lastErr = &DishCountError{Want: dishCount, Got: len(dishes)}
	}
	return nil, fmt.Errorf("dish generation failed after %d attempts: %w", maxGenerateRetries, lastErr)
}

// Classify asks the lite model which expiring and inventory items a dish
// uses and which ingredients are missing.
func (a *Agent) Classify(ctx context.Context, dish Dish, expiring, current []types.Ingredient) (*types.IngredientAnalysis, error) {
	template := prompts.MustGet("recipes.json", "ingredient_classification")
	prompt := prompts.Format(template, map[string]string{
		"DishText":      dish.Title + "\n" + dish.Body,
		"ExpiringList":  joinNames(expiring),
		"InventoryList": joinNames(current),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite, 0)
	if err != nil {
		return nil, fmt.Errorf("ingredient classification failed: %w", err)
	}

	block, err := llm.ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("ingredient classification returned no JSON: %w", err)
	}

	var analysis types.IngredientAnalysis
	if err := json.Unmarshal([]byte(block), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient classification: %w", err)
	}
	return &analysis, nil
}

// Retrieve grounds a dish in the corpus, returning the closest stored
// recipes. A nil retriever yields no hits.
func (a *Agent) Retrieve(ctx context.Context, dish Dish, limit int) ([]types.RetrievedRecipe, error) {
	if a.retriever == nil {
		return nil, nil
	}
	return a.retriever.Search(ctx, CleanForRAG(dish), limit)
}

// CandidatesResult bundles everything FindCandidates produced for one run.
type CandidatesResult struct {
	Candidates []types.CandidateRecipe `json:"candidates"`
	Retrieved  [][]types.RetrievedRecipe `json:"retrieved,omitempty"`
}

// FindCandidates runs the full recipe branch: generate three dishes, ground
// each in the corpus, classify its ingredient usage and emit the ranked
// candidate list. Dish order is the rank; dish one is the strongest idea.
func (a *Agent) FindCandidates(ctx context.Context, expiring, current []types.Ingredient) (*CandidatesResult, error) {
	dishes, err := a.GenerateDishes(ctx, expiring, current)
	if err != nil {
		return nil, err
	}

	result := &CandidatesResult{
		Candidates: make([]types.CandidateRecipe, 0, len(dishes)),
		Retrieved:  make([][]types.RetrievedRecipe, len(dishes)),
	}

	for i, dish := range dishes {
		analysis, err := a.Classify(ctx, dish, expiring, current)
		if err != nil {
			return nil, fmt.Errorf("dish %d: %w", i+1, err)
		}

		hits, err := a.Retrieve(ctx, dish, 1)
		if err != nil {
			// Retrieval grounds the narrative, not the allocation. Keep going.
			hits = nil
		}
		result.Retrieved[i] = hits

		result.Candidates = append(result.Candidates, types.CandidateRecipe{
			Title:           dish.Title,
			Rank:            i + 1,
			MatchedExpiring: analysis.MatchedExpiring,
			Inventory:       analysis.MatchedInventory,
			Missing:         analysis.Missing,
			Instructions:    StripDashes(dish.Body),
		})
	}
	return result, nil
}

func joinNames(ingredients []types.Ingredient) string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Name != "" {
			names = append(names, ing.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
