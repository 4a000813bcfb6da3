//nolint:revive // types is a standard Go package name pattern
package types

// NearbyRestaurant is one row of the nearby-restaurants CSV.
type NearbyRestaurant struct {
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine"`
	DistanceKm float64 `json:"distance_km"`
}

// RestaurantScore is the restaurant agent's judgement of one potential buyer.
// The list written to top_restaurants.json is ordered best-first; the first
// entry becomes the run's sell target.
type RestaurantScore struct {
	Name               string   `json:"name"`
	MatchedIngredients []string `json:"matched_ingredients"`
	Reason             string   `json:"reason"`
}

// DonationCenter is a soup kitchen that can receive a same-day donation.
type DonationCenter struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
	Hours      string  `json:"hours,omitempty"`
}
