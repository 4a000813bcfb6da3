package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact filenames written under the results directory.
const (
	TopRecipesFile      = "top_recipes.json"
	TopRestaurantsFile  = "top_restaurants.json"
	BestSoupKitchenFile = "best_soup_kitchen.json"
	FinalDecisionFile   = "final_decision_output.json"

	// MessagesDir holds the composed outbound messages for one run.
	MessagesDir = "messages"

	KitchenDispatchFile = "kitchen_dispatch.txt"
	SellOfferFile       = "sell_offer.txt"
	DonationOfferFile   = "donation_offer.txt"
)

// WriteArtifact marshals v as indented JSON into dir/name, creating dir as
// needed, and returns the written path.
func WriteArtifact(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteMessage writes a plain-text message into dir/messages/name.
func WriteMessage(dir, name, text string) (string, error) {
	msgDir := filepath.Join(dir, MessagesDir)
	if err := os.MkdirAll(msgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create messages directory %s: %w", msgDir, err)
	}

	path := filepath.Join(msgDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ReadArtifact unmarshals the JSON artifact dir/name into v.
func ReadArtifact(dir, name string, v any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return nil
}
