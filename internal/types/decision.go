//nolint:revive // types is a standard Go package name pattern
package types

// Action is the disposition assigned to one expiring ingredient.
type Action string

// Every ingredient in the expiring universe receives exactly one of these.
const (
	ActionCook   Action = "COOK"
	ActionSell   Action = "SELL"
	ActionDonate Action = "DONATE"
)

// Valid reports whether the action is one of the three known dispositions.
func (a Action) Valid() bool {
	switch a {
	case ActionCook, ActionSell, ActionDonate:
		return true
	}
	return false
}

// Decision records the disposition of a single expiring ingredient.
// Item carries the canonical (first-seen, trimmed) display name.
type Decision struct {
	Item              string   `json:"item"`
	Action            Action   `json:"action"`
	Reason            string   `json:"reason"`
	TargetRecipes     []string `json:"target_recipes,omitempty"`
	TargetRestaurants []string `json:"target_restaurants,omitempty"`
	DonationCenter    string   `json:"donation_center,omitempty"`
}
