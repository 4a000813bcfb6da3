package inventory

import (
	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/types"
)

// Staples that never get auto-marked as expiring.
var autoBlacklist = map[string]bool{
	"salt":     true,
	"water":    true,
	"sea salt": true,
	"lemon":    true,
}

const (
	minExpiring     = 5
	maxExpiring     = 10
	minKeepFraction = 0.3
	maxKeepFraction = 0.8
	minDaysToExpire = 1
	maxDaysToExpire = 4
)

// PrepareResult is the split produced by Prepare: the batch marked as
// expiring and the remaining current inventory.
type PrepareResult struct {
	Expiring []types.Ingredient `json:"expiring"`
	Current  []types.Ingredient `json:"current"`
}

// Prepare simulates a stock take. It randomly marks between five and ten
// eligible items as expiring, reduces their quantities to a partial remainder
// and assigns each a short shelf life. Blacklisted staples and unlimited
// items are never selected. The remaining items become the current inventory.
func Prepare(full []types.Ingredient, rng allocation.Rand) *PrepareResult {
	var candidates []int
	for i, ing := range full {
		if ing.Name == "" {
			continue
		}
		if autoBlacklist[ingredient.Normalize(ing.Name)] {
			continue
		}
		if ing.Unlimited() {
			continue
		}
		candidates = append(candidates, i)
	}

	maxItems := maxExpiring
	if len(candidates) < maxItems {
		maxItems = len(candidates)
	}
	minItems := minExpiring
	if maxItems < minItems {
		minItems = maxItems
	}

	count := 0
	if maxItems > 0 {
		count = minItems + intn(rng, maxItems-minItems+1)
	}
	chosen := sample(candidates, count, rng)

	expiring := make([]types.Ingredient, 0, len(chosen))
	expiringNames := make(map[string]bool, len(chosen))
	for _, i := range chosen {
		ing := full[i]
		if !ing.Quantity.IsText {
			// Keep 30-80% of the original amount to simulate partial stock.
			factor := minKeepFraction + rng.Float64()*(maxKeepFraction-minKeepFraction)
			ing.Quantity = types.NumberQuantity(roundTwo(ing.Quantity.Value * factor))
		}
		days := minDaysToExpire + intn(rng, maxDaysToExpire-minDaysToExpire+1)
		ing.DaysToExpire = &days

		expiring = append(expiring, ing)
		expiringNames[ingredient.Normalize(ing.Name)] = true
	}

	current := make([]types.Ingredient, 0, len(full))
	for _, ing := range full {
		if expiringNames[ingredient.Normalize(ing.Name)] {
			continue
		}
		ing.DaysToExpire = nil
		current = append(current, ing)
	}

	return &PrepareResult{Expiring: expiring, Current: current}
}

// sample picks k distinct elements from items using a partial shuffle.
func sample(items []int, k int, rng allocation.Rand) []int {
	if k <= 0 {
		return nil
	}
	pool := make([]int, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + intn(rng, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// intn maps a uniform float draw onto [0, n).
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

func roundTwo(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
