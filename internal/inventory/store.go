// Package inventory manages the restaurant's inventory snapshots on disk.
// A run starts from the full inventory and splits it into an expiring batch
// and the remaining current inventory.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/team4/foodflow/internal/types"
)

// File names used under the data directory.
const (
	FullInventoryFile       = "full_inventory.json"
	CurrentInventoryFile    = "current_inventory.json"
	ExpiringIngredientsFile = "expiring_ingredients.json"
	ExpiringHistoryFile     = "recent_expiring_ingredients.json"
)

// Store reads and writes inventory snapshots under a single data directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given data directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the absolute location of a file inside the data directory.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// LoadFull reads the full inventory snapshot.
func (s *Store) LoadFull() ([]types.Ingredient, error) {
	return s.loadIngredients(FullInventoryFile)
}

// LoadCurrent reads the current inventory (full minus expiring).
func (s *Store) LoadCurrent() ([]types.Ingredient, error) {
	return s.loadIngredients(CurrentInventoryFile)
}

// LoadExpiring reads the expiring batch for the current run.
func (s *Store) LoadExpiring() ([]types.Ingredient, error) {
	return s.loadIngredients(ExpiringIngredientsFile)
}

// SaveCurrent writes the current inventory snapshot.
func (s *Store) SaveCurrent(ingredients []types.Ingredient) error {
	return s.saveJSON(CurrentInventoryFile, ingredients)
}

// SaveExpiring writes the expiring batch for the current run.
func (s *Store) SaveExpiring(ingredients []types.Ingredient) error {
	return s.saveJSON(ExpiringIngredientsFile, ingredients)
}

// LoadHistory reads the rolling history of past expiring batches.
// A missing or empty file yields an empty history.
func (s *Store) LoadHistory() ([][]types.Ingredient, error) {
	data, err := os.ReadFile(s.Path(ExpiringHistoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ExpiringHistoryFile, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var history [][]types.Ingredient
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ExpiringHistoryFile, err)
	}
	return history, nil
}

// AppendHistory adds the latest expiring batch to the rolling history file.
func (s *Store) AppendHistory(batch []types.Ingredient) error {
	history, err := s.LoadHistory()
	if err != nil {
		return err
	}
	history = append(history, batch)
	return s.saveJSON(ExpiringHistoryFile, history)
}

func (s *Store) loadIngredients(filename string) ([]types.Ingredient, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var ingredients []types.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return ingredients, nil
}

func (s *Store) saveJSON(filename string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(s.Path(filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
