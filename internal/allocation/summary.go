package allocation

import (
	"fmt"
	"strings"

	"github.com/team4/foodflow/internal/types"
)

// Summary groups one run's decisions by action for the console recap.
type Summary struct {
	CookItems   []string
	SellItems   []string
	DonateItems []string

	RecipeTitle    string
	SellTarget     string
	DonationCenter string
}

// Summarize groups decisions by action, keeping item order. Targets are taken
// from the first decision that names them; the allocator only ever emits one
// recipe, one sell target and one donation center per run.
func Summarize(decisions []types.Decision) Summary {
	var s Summary
	for _, d := range decisions {
		switch d.Action {
		case types.ActionCook:
			s.CookItems = append(s.CookItems, d.Item)
			if s.RecipeTitle == "" && len(d.TargetRecipes) > 0 {
				s.RecipeTitle = d.TargetRecipes[0]
			}
		case types.ActionSell:
			s.SellItems = append(s.SellItems, d.Item)
			if s.SellTarget == "" && len(d.TargetRestaurants) > 0 {
				s.SellTarget = d.TargetRestaurants[0]
			}
		case types.ActionDonate:
			s.DonateItems = append(s.DonateItems, d.Item)
			if s.DonationCenter == "" {
				s.DonationCenter = d.DonationCenter
			}
		}
	}
	return s
}

// Lines renders the three-group console summary: one line per action with the
// joined item list and a rationale sentence.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("COOK (%s): %s. Cooking these today captures their value before they expire.",
			orUnset(s.RecipeTitle), joinOrNone(s.CookItems)),
		fmt.Sprintf("SELL (%s): %s. Fresh enough for a partner kitchen to buy at a discount.",
			orUnset(s.SellTarget), joinOrNone(s.SellItems)),
		fmt.Sprintf("DONATE (%s): %s. A same-day pickup keeps these out of the bin.",
			orUnset(s.DonationCenter), joinOrNone(s.DonateItems)),
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orUnset(name string) string {
	if name == "" {
		return "no target"
	}
	return name
}
