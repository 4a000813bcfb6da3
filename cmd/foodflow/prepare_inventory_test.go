package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team4/foodflow/internal/types"
)

func TestPrepareInventoryCommand_SplitsInventory(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()

	names := []string{
		"tomato", "eggs", "yogurt", "basil", "chicken", "rice",
		"spinach", "feta", "onion", "garlic", "milk", "butter",
	}
	full := make([]types.Ingredient, 0, len(names))
	for _, name := range names {
		full = append(full, types.Ingredient{Name: name, Quantity: types.NumberQuantity(5), Unit: "kg"})
	}
	writeJSON(t, filepath.Join(dataDir, "full_inventory.json"), full)

	cmd := exec.Command(binaryPath, "prepare-inventory",
		"--data-dir", dataDir,
		"--seed", "42")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	var expiring []types.Ingredient
	data, err := os.ReadFile(filepath.Join(dataDir, "expiring_ingredients.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &expiring))

	assert.GreaterOrEqual(t, len(expiring), 5)
	assert.LessOrEqual(t, len(expiring), 10)
	for _, ing := range expiring {
		require.NotNil(t, ing.DaysToExpire)
		assert.GreaterOrEqual(t, *ing.DaysToExpire, 1)
		assert.LessOrEqual(t, *ing.DaysToExpire, 4)
	}

	assert.FileExists(t, filepath.Join(dataDir, "current_inventory.json"))
	assert.FileExists(t, filepath.Join(dataDir, "recent_expiring_ingredients.json"))
}

func TestPrepareInventoryCommand_MissingInventory(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "prepare-inventory",
		"--data-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "loading full inventory failed")
}
