package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team4/foodflow/internal/types"
)

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	days := 2
	batch := []types.Ingredient{
		{Name: "Eggplant", Quantity: types.NumberQuantity(3.5), Unit: "kg", DaysToExpire: &days},
		{Name: "Salt", Quantity: types.TextQuantity("unlimited")},
	}

	require.NoError(t, store.SaveExpiring(batch))
	loaded, err := store.LoadExpiring()
	require.NoError(t, err)
	assert.Equal(t, batch, loaded)
}

func TestStore_LoadFull_AcceptsFieldAliases(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	raw := `[
		{"item": "Mint", "quantity": 2, "unit": "bunches"},
		{"name": "Yogurt", "quantity": "unlimited", "expires_in_days": 3}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FullInventoryFile), []byte(raw), 0o644))

	loaded, err := store.LoadFull()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Mint", loaded[0].Name)
	assert.Equal(t, "Yogurt", loaded[1].Name)
	require.NotNil(t, loaded[1].DaysToExpire)
	assert.Equal(t, 3, *loaded[1].DaysToExpire)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.LoadExpiring()
	assert.Error(t, err)
}

func TestStore_History(t *testing.T) {
	store := NewStore(t.TempDir())

	// Missing history file reads as empty.
	history, err := store.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)

	first := []types.Ingredient{{Name: "Mint", Quantity: types.NumberQuantity(1)}}
	second := []types.Ingredient{{Name: "Feta", Quantity: types.NumberQuantity(2)}}
	require.NoError(t, store.AppendHistory(first))
	require.NoError(t, store.AppendHistory(second))

	history, err = store.LoadHistory()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Mint", history[0][0].Name)
	assert.Equal(t, "Feta", history[1][0].Name)
}

func TestStore_HistoryEmptyFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExpiringHistoryFile), []byte(""), 0o644))

	history, err := store.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)
}
