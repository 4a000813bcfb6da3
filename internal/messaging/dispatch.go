package messaging

import (
	"fmt"
	"strings"

	"github.com/team4/foodflow/internal/types"
)

// SelectedRecipeTitle returns the recipe the cook group was assigned to.
// It is the first COOK decision's first target recipe.
func SelectedRecipeTitle(decisions []types.Decision) (string, error) {
	for _, d := range decisions {
		if d.Action == types.ActionCook && len(d.TargetRecipes) > 0 {
			if title := strings.TrimSpace(d.TargetRecipes[0]); title != "" {
				return title, nil
			}
		}
	}
	return "", fmt.Errorf("no COOK decision with a target recipe found")
}

// FindRecipe locates a candidate by title, case-insensitively.
func FindRecipe(title string, candidates []types.CandidateRecipe) (*types.CandidateRecipe, error) {
	want := strings.ToLower(strings.TrimSpace(title))
	for i := range candidates {
		if strings.ToLower(strings.TrimSpace(candidates[i].Title)) == want {
			return &candidates[i], nil
		}
	}
	return nil, fmt.Errorf("recipe %q not found among candidates", title)
}

// ComposeKitchenDispatch formats the selected recipe as the ticket the
// kitchen receives.
func ComposeKitchenDispatch(recipe *types.CandidateRecipe) string {
	var lines []string
	lines = append(lines,
		"===== KITCHEN DISPATCH =====",
		fmt.Sprintf("Recipe: %s", titleOrUnknown(recipe.Title)),
		"----------------------------",
	)

	ingredients := make([]string, 0, len(recipe.MatchedExpiring)+len(recipe.Inventory)+len(recipe.Missing))
	ingredients = append(ingredients, recipe.MatchedExpiring...)
	ingredients = append(ingredients, recipe.Inventory...)
	ingredients = append(ingredients, recipe.Missing...)

	if len(ingredients) > 0 {
		lines = append(lines, "Ingredients:")
		for _, it := range ingredients {
			lines = append(lines, fmt.Sprintf(" - %s", it))
		}
	} else {
		lines = append(lines, "Ingredients: (not available)")
	}

	lines = append(lines, "----------------------------")
	if recipe.Reason != "" {
		lines = append(lines, "Chef Notes / Reason:", fmt.Sprintf(" %s", recipe.Reason))
	}
	if recipe.Instructions != "" {
		lines = append(lines, "Instructions:", recipe.Instructions)
	}
	lines = append(lines, "============================")
	return strings.Join(lines, "\n")
}

func titleOrUnknown(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(unknown)"
	}
	return title
}
