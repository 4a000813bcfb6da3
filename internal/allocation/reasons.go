package allocation

import (
	"fmt"

	"github.com/team4/foodflow/internal/ingredient"
)

// Shelf-life buckets used only for the wording of reasons, never for the
// action itself. Unknown expiry sits in the middle tier so the narrative does
// not overstate urgency either way.
type shelfBucket int

const (
	bucketUrgent shelfBucket = iota // expires within a day
	bucketSoon                      // 2-3 days, or unknown
	bucketStable                    // more than 3 days
)

func bucketFor(days *int) shelfBucket {
	if days == nil {
		return bucketSoon
	}
	switch {
	case *days <= 1:
		return bucketUrgent
	case *days <= 3:
		return bucketSoon
	default:
		return bucketStable
	}
}

// Small curated vocabularies (by normalized name) that color the reason text.
var quickSpoiling = map[string]bool{
	"fish": true, "shrimp": true, "yogurt": true, "milk": true,
	"cream": true, "creme fraiche": true, "basil": true, "mint": true,
	"spinach": true, "lettuce": true, "berries": true, "cilantro": true,
}

var crossKitchenStaples = map[string]bool{
	"tomato": true, "onion": true, "garlic": true, "lemon": true,
	"potato": true, "eggplant": true, "olive oil": true, "parsley": true,
	"cucumber": true, "bell pepper": true,
}

var donationFriendly = map[string]bool{
	"bread": true, "rice": true, "pasta": true, "beans": true,
	"chickpeas": true, "potato": true, "carrot": true, "cabbage": true,
	"lentils": true,
}

func cookReason(entry ingredient.Entry, recipeTitle string) string {
	switch bucketFor(entry.DaysToExpire) {
	case bucketUrgent:
		return fmt.Sprintf("Expires within a day; cooking it into %q uses it at peak value.", recipeTitle)
	case bucketStable:
		return fmt.Sprintf("Called for by today's special %q.", recipeTitle)
	default:
		return fmt.Sprintf("On its last few days; %q puts it on today's menu.", recipeTitle)
	}
}

func sellReason(entry ingredient.Entry, target string) string {
	if crossKitchenStaples[entry.Norm] {
		return fmt.Sprintf("A staple most kitchens restock daily; %s can use it right away.", target)
	}
	switch bucketFor(entry.DaysToExpire) {
	case bucketUrgent:
		return fmt.Sprintf("Too short-dated for our menu but still sellable today to %s at a discount.", target)
	case bucketStable:
		return fmt.Sprintf("Fresh with shelf life to spare; a straightforward sale to %s.", target)
	default:
		return fmt.Sprintf("Not needed for today's special; %s is the likeliest buyer nearby.", target)
	}
}

func donateReason(entry ingredient.Entry, center string) string {
	if donationFriendly[entry.Norm] {
		return fmt.Sprintf("Keeps well and feeds many; a natural fit for %s.", center)
	}
	if quickSpoiling[entry.Norm] && bucketFor(entry.DaysToExpire) == bucketUrgent {
		return fmt.Sprintf("Spoils too fast to sell; %s can serve it today.", center)
	}
	return fmt.Sprintf("No buyer and no spot on the menu, so it goes to %s instead of the bin.", center)
}
