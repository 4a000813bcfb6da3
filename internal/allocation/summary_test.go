package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team4/foodflow/internal/types"
)

func TestSummarize_GroupsByAction(t *testing.T) {
	decisions := []types.Decision{
		{Item: "eggplant", Action: types.ActionCook, TargetRecipes: []string{"Baba Ganoush"}},
		{Item: "yogurt", Action: types.ActionSell, TargetRestaurants: []string{"Bistro X"}},
		{Item: "mint", Action: types.ActionDonate, DonationCenter: "Shelter Y"},
		{Item: "cream", Action: types.ActionDonate, DonationCenter: "Shelter Y"},
	}

	s := Summarize(decisions)
	assert.Equal(t, []string{"eggplant"}, s.CookItems)
	assert.Equal(t, []string{"yogurt"}, s.SellItems)
	assert.Equal(t, []string{"mint", "cream"}, s.DonateItems)
	assert.Equal(t, "Baba Ganoush", s.RecipeTitle)
	assert.Equal(t, "Bistro X", s.SellTarget)
	assert.Equal(t, "Shelter Y", s.DonationCenter)
}

func TestSummary_Lines(t *testing.T) {
	s := Summary{
		CookItems:   []string{"eggplant"},
		DonateItems: []string{"mint", "cream"},
		RecipeTitle: "Baba Ganoush",
	}

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "COOK (Baba Ganoush): eggplant")
	assert.Contains(t, lines[1], "SELL (no target): none")
	assert.Contains(t, lines[2], "DONATE")
	assert.Contains(t, lines[2], "mint, cream")
}
