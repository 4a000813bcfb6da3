// Package places loads nearby restaurants and soup kitchens and talks to the
// Google Places API to refresh those datasets.
package places

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/team4/foodflow/internal/types"
)

// File names used under the data directory.
const (
	RestaurantsCSV  = "nearby_restaurants.csv"
	SoupKitchensCSV = "nearby_soup_kitchens.csv"
)

// missingDistanceKm is assigned when a row has no usable distance so the
// entry sorts last instead of being dropped.
const missingDistanceKm = 999

// LoadRestaurants reads the nearby restaurant dataset from a CSV file.
// Rows with a missing name are skipped; a missing distance sorts last.
func LoadRestaurants(path string) ([]types.NearbyRestaurant, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var restaurants []types.NearbyRestaurant
	for _, row := range rows {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		cuisine := strings.TrimSpace(row["types"])
		if cuisine == "" {
			cuisine = "unknown"
		}
		restaurants = append(restaurants, types.NearbyRestaurant{
			Name:       name,
			Cuisine:    cuisine,
			DistanceKm: parseDistance(row["distance_from_ha_salon_km"]),
		})
	}
	return restaurants, nil
}

// LoadSoupKitchens reads the nearby soup kitchen dataset from a CSV file.
func LoadSoupKitchens(path string) ([]types.DonationCenter, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var kitchens []types.DonationCenter
	for _, row := range rows {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		kitchens = append(kitchens, types.DonationCenter{
			Name:       name,
			Address:    strings.TrimSpace(row["address"]),
			DistanceKm: parseDistance(row["distance_from_ha_salon_km"]),
			Hours:      strings.TrimSpace(row["opening_hours"]),
		})
	}
	return kitchens, nil
}

// readCSV reads a headered CSV file into one map per row keyed by column name.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row from %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseDistance(raw string) float64 {
	dist, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(dist) || dist < 0 {
		return missingDistanceKm
	}
	return math.Round(dist*100) / 100
}
