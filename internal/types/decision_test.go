//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecision_JSONMarshaling(t *testing.T) {
	decision := Decision{
		Item:          "Eggplant",
		Action:        ActionCook,
		Reason:        "Featured in today's special",
		TargetRecipes: []string{"Baba Ganoush"},
	}

	jsonBytes, err := json.Marshal(decision)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"item":"Eggplant"`)
	assert.Contains(t, string(jsonBytes), `"action":"COOK"`)
	assert.Contains(t, string(jsonBytes), `"target_recipes":["Baba Ganoush"]`)
	// Empty optional targets are omitted entirely.
	assert.NotContains(t, string(jsonBytes), "target_restaurants")
	assert.NotContains(t, string(jsonBytes), "donation_center")
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionCook.Valid())
	assert.True(t, ActionSell.Valid())
	assert.True(t, ActionDonate.Valid())
	assert.False(t, Action("COMPOST").Valid())
	assert.False(t, Action("").Valid())
}
