package allocation

import (
	"math"

	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/types"
)

// FallbackDonationCenter is used when donations must happen but no donation
// target was supplied.
const FallbackDonationCenter = "Local soup kitchen"

// BuildDecisions assigns every ingredient in the universe to exactly one
// action, in the universe's insertion order.
//
// An ingredient is COOK iff the selected recipe covers it (after intersecting
// the recipe's ingredient references with the universe). Every other
// ingredient takes one uniform draw when a sell target exists: a draw below
// sellProbability sells to that target, anything else donates. Without a sell
// target everything non-cooked is donated and no draws are consumed.
//
// An empty universe yields an empty decision list, not an error. A nil
// selected recipe means no ingredient can be COOK.
func BuildDecisions(universe *ingredient.Universe, selected *types.CandidateRecipe, sellTarget, donateTarget string, rng Rand, sellProbability float64) ([]types.Decision, error) {
	if math.IsNaN(sellProbability) || sellProbability < 0 || sellProbability > 1 {
		return nil, &InvalidProbabilityError{Name: "sell_probability", Value: sellProbability}
	}

	covered := map[string]bool{}
	if selected != nil {
		covered = universe.Intersect(selected.MatchedExpiring)
	}

	decisions := make([]types.Decision, 0, universe.Len())
	for _, entry := range universe.Entries() {
		switch {
		case covered[entry.Norm]:
			decisions = append(decisions, types.Decision{
				Item:          entry.Canonical,
				Action:        types.ActionCook,
				Reason:        cookReason(entry, selected.Title),
				TargetRecipes: []string{selected.Title},
			})

		case sellTarget != "" && rng.Float64() < sellProbability:
			decisions = append(decisions, types.Decision{
				Item:              entry.Canonical,
				Action:            types.ActionSell,
				Reason:            sellReason(entry, sellTarget),
				TargetRestaurants: []string{sellTarget},
			})

		default:
			center := donateTarget
			if center == "" {
				center = FallbackDonationCenter
			}
			decisions = append(decisions, types.Decision{
				Item:           entry.Canonical,
				Action:         types.ActionDonate,
				Reason:         donateReason(entry, center),
				DonationCenter: center,
			})
		}
	}
	return decisions, nil
}
