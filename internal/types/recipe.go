//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// CandidateRecipe is one ranked recipe candidate produced by the recipe agent.
// Rank is 1-based; 1 is the best candidate. MatchedExpiring names are free
// text from the classification step and must be normalized before any set
// operation against the expiring universe.
type CandidateRecipe struct {
	Title           string   `json:"title"`
	Rank            int      `json:"rank"`
	MatchedExpiring []string `json:"matched_expiring"`
	// Carried for kitchen dispatch and narrative output; not used by the allocator.
	Inventory    []string `json:"inventory,omitempty"`
	Missing      []string `json:"missing,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

// UnmarshalJSON tolerates wrong-typed fields in a candidate record. A record
// whose title is not a string (or is absent) decodes to a zero Title, which
// ValidCandidates later drops; one bad record never fails the whole artifact.
func (c *CandidateRecipe) UnmarshalJSON(data []byte) error {
	var aux struct {
		Title           json.RawMessage `json:"title"`
		Rank            json.RawMessage `json:"rank"`
		MatchedExpiring []string        `json:"matched_expiring"`
		Inventory       []string        `json:"inventory"`
		Missing         []string        `json:"missing"`
		Instructions    string          `json:"instructions"`
		Reason          string          `json:"reason"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*c = CandidateRecipe{
		MatchedExpiring: aux.MatchedExpiring,
		Inventory:       aux.Inventory,
		Missing:         aux.Missing,
		Instructions:    aux.Instructions,
		Reason:          aux.Reason,
	}

	var title string
	if json.Unmarshal(aux.Title, &title) == nil {
		c.Title = strings.TrimSpace(title)
	}
	var rank int
	if json.Unmarshal(aux.Rank, &rank) == nil {
		c.Rank = rank
	}
	return nil
}

// ValidCandidates filters out malformed candidate records. A candidate
// without a title cannot be selected, dispatched or reported; the returned
// indexes (1-based, matching rank conventions) name the dropped records so
// callers can warn about them.
func ValidCandidates(candidates []CandidateRecipe) ([]CandidateRecipe, []int) {
	valid := make([]CandidateRecipe, 0, len(candidates))
	var dropped []int
	for i, c := range candidates {
		if c.Title == "" {
			dropped = append(dropped, i+1)
			continue
		}
		valid = append(valid, c)
	}
	return valid, dropped
}

// StoredRecipe is a corpus recipe as uploaded to the vector store.
type StoredRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Cuisine      string   `json:"cuisine,omitempty"`
}

// RetrievedRecipe is a vector-store hit with its similarity score.
type RetrievedRecipe struct {
	Score  float64      `json:"score"`
	Recipe StoredRecipe `json:"payload"`
}

// IngredientAnalysis is the JSON-mode LLM classification of one dish's
// ingredients against the expiring batch and the current inventory.
type IngredientAnalysis struct {
	MatchedExpiring  []string `json:"matched_expiring"`
	MatchedInventory []string `json:"matched_inventory"`
	Missing          []string `json:"missing"`
}
