// Package restaurants finds nearby restaurants likely to buy today's
// expiring surplus.
package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/prompts"
	"github.com/team4/foodflow/internal/types"
)

const (
	// sampleLimit caps how many restaurants go into the random sample.
	sampleLimit = 50

	// shortlistSize is how many of the sampled restaurants (closest first)
	// the scoring prompt sees. Keeps the token load bounded.
	shortlistSize = 20
)

// Shortlist samples up to fifty restaurants at random, then keeps the twenty
// closest of the sample. The randomness rotates which restaurants get offers
// across runs; the distance cut keeps the offers practical.
func Shortlist(restaurants []types.NearbyRestaurant, rng allocation.Rand) []types.NearbyRestaurant {
	sampled := sample(restaurants, sampleLimit, rng)
	sort.SliceStable(sampled, func(i, j int) bool {
		return sampled[i].DistanceKm < sampled[j].DistanceKm
	})
	if len(sampled) > shortlistSize {
		sampled = sampled[:shortlistSize]
	}
	return sampled
}

func sample(restaurants []types.NearbyRestaurant, k int, rng allocation.Rand) []types.NearbyRestaurant {
	pool := make([]types.NearbyRestaurant, len(restaurants))
	copy(pool, restaurants)
	if k >= len(pool) {
		return pool
	}
	for i := 0; i < k; i++ {
		j := i + intn(rng, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func intn(rng allocation.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Agent scores shortlisted restaurants against the expiring batch.
type Agent struct {
	client llm.Client
}

// NewAgent wires a restaurant agent.
func NewAgent(client llm.Client) *Agent {
	return &Agent{client: client}
}

// RankBuyers asks the model which shortlisted restaurants are the best
// buyers for the expiring batch, best match first.
func (a *Agent) RankBuyers(ctx context.Context, expiring []types.Ingredient, shortlist []types.NearbyRestaurant) ([]types.RestaurantScore, error) {
	if len(shortlist) == 0 {
		return nil, nil
	}

	ingredientsJSON, err := json.MarshalIndent(expiring, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expiring ingredients: %w", err)
	}

	template := prompts.MustGet("restaurants.json", "rank_buyers")
	prompt := prompts.Format(template, map[string]string{
		"Ingredients": string(ingredientsJSON),
		"Restaurants": formatShortlist(shortlist),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard, 0)
	if err != nil {
		return nil, fmt.Errorf("restaurant scoring failed: %w", err)
	}

	block, err := llm.ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("restaurant scoring returned no JSON: %w", err)
	}

	var scores []types.RestaurantScore
	if err := json.Unmarshal([]byte(block), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse restaurant scores: %w", err)
	}
	return scores, nil
}

func formatShortlist(shortlist []types.NearbyRestaurant) string {
	lines := make([]string, 0, len(shortlist))
	for _, r := range shortlist {
		lines = append(lines, fmt.Sprintf("- %s: %s (distance: %.2f km)", r.Name, r.Cuisine, r.DistanceKm))
	}
	return strings.Join(lines, "\n")
}
