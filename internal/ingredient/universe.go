package ingredient

import (
	"strings"

	"github.com/team4/foodflow/internal/types"
)

// Entry is one unique ingredient in the expiring universe. Canonical is the
// first-seen, trimmed display form for the normalized key.
type Entry struct {
	Canonical    string
	Norm         string
	Quantity     types.Quantity
	Unit         string
	DaysToExpire *int
}

// Universe is the authoritative, deduplicated set of expiring ingredients for
// one run. It preserves insertion order of first appearance; duplicates (by
// normalized name) are dropped. Candidate recipes are filtered against the
// universe, never merged into it.
type Universe struct {
	entries []Entry
	index   map[string]int
}

// NewUniverse builds a universe from canonical ingredient records. Records
// whose name normalizes to the empty string are skipped.
func NewUniverse(items []types.Ingredient) *Universe {
	u := &Universe{index: make(map[string]int, len(items))}
	for _, item := range items {
		u.add(item)
	}
	return u
}

// NewUniverseFromNames builds a universe from bare names, for callers that
// have no quantity or expiry metadata.
func NewUniverseFromNames(names []string) *Universe {
	items := make([]types.Ingredient, 0, len(names))
	for _, name := range names {
		items = append(items, types.Ingredient{Name: name})
	}
	return NewUniverse(items)
}

func (u *Universe) add(item types.Ingredient) {
	key := Normalize(item.Name)
	if key == "" {
		return
	}
	if _, seen := u.index[key]; seen {
		return
	}
	u.index[key] = len(u.entries)
	u.entries = append(u.entries, Entry{
		Canonical:    canonicalForm(item.Name),
		Norm:         key,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		DaysToExpire: item.DaysToExpire,
	})
}

// canonicalForm trims surrounding whitespace but preserves case and accents.
func canonicalForm(name string) string {
	return strings.TrimSpace(name)
}

// Len returns the number of unique ingredients.
func (u *Universe) Len() int {
	return len(u.entries)
}

// Entries returns the unique ingredients in insertion order.
func (u *Universe) Entries() []Entry {
	return u.entries
}

// Contains reports whether the normalized key belongs to the universe.
func (u *Universe) Contains(normKey string) bool {
	_, ok := u.index[normKey]
	return ok
}

// Lookup returns the entry for a normalized key.
func (u *Universe) Lookup(normKey string) (Entry, bool) {
	i, ok := u.index[normKey]
	if !ok {
		return Entry{}, false
	}
	return u.entries[i], true
}

// Intersect filters free-text names down to the normalized keys that belong
// to the universe. Names outside the universe (stale or approximate recipe
// matches) are dropped so they can never trigger a COOK action.
func (u *Universe) Intersect(names []string) map[string]bool {
	out := make(map[string]bool)
	for _, name := range names {
		if key := Normalize(name); key != "" && u.Contains(key) {
			out[key] = true
		}
	}
	return out
}
