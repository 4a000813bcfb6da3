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

func TestFindDonationCommand_PicksNearbyKitchen(t *testing.T) {
	binaryPath := getBinaryPath(t)
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	resultsDir := filepath.Join(base, "results")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	csv := "name,address,distance_from_ha_salon_km,opening_hours\n" +
		"Lasova,Tchernichovsky 16,1.5,Sun-Thu 11:00-15:00\n" +
		"Meir Panim,Far Street 1,8.2,\n" +
		"Hazon Yeshaya,Near Road 2,0.9,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "nearby_soup_kitchens.csv"), []byte(csv), 0o644))

	cmd := exec.Command(binaryPath, "find-donation",
		"--data-dir", dataDir,
		"--results-dir", resultsDir,
		"--seed", "42")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	var center types.DonationCenter
	data, err := os.ReadFile(filepath.Join(resultsDir, "best_soup_kitchen.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &center))

	assert.NotEmpty(t, center.Name)
	assert.Contains(t, []string{"Lasova", "Meir Panim", "Hazon Yeshaya"}, center.Name)
}

func TestFindDonationCommand_MissingCSV(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "find-donation",
		"--data-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "loading soup kitchens failed")
}
