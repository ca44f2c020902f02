// Package models defines the data structures for the car cost engine.
package models

import (
	"errors"
	"strings"
)

// Common errors. The calculation engine itself is a total function and never
// returns errors; these belong to the storage and API boundary.
var (
	ErrEmptyProfileKey     = errors.New("profile key cannot be empty")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrEmptyListing        = errors.New("vehicle listing carries no data")
)

// NormalizeFuelType maps the fuel labels seen in listings and stored
// preferences (Swedish and English, mixed casing) to the standard values.
// Unknown labels pass through lowercased; the engine treats them as a plain
// fuel with depreciation multiplier 1.0.
func NormalizeFuelType(fuel string) FuelType {
	normalized := strings.ToLower(strings.TrimSpace(fuel))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	fuelMap := map[string]FuelType{
		"petrol":        FuelTypePetrol,
		"gasoline":      FuelTypePetrol,
		"bensin":        FuelTypePetrol,
		"diesel":        FuelTypeDiesel,
		"electric":      FuelTypeElectric,
		"el":            FuelTypeElectric,
		"ev":            FuelTypeElectric,
		"bev":           FuelTypeElectric,
		"hybrid":        FuelTypeHybrid,
		"elhybrid":      FuelTypeHybrid,
		"mild_hybrid":   FuelTypeHybrid,
		"plugin_hybrid": FuelTypePluginHybrid,
		"plug_in":       FuelTypePluginHybrid,
		"phev":          FuelTypePluginHybrid,
		"laddhybrid":    FuelTypePluginHybrid,
		"ethanol":       FuelTypeEthanol,
		"etanol":        FuelTypeEthanol,
		"e85":           FuelTypeEthanol,
	}

	if mapped, ok := fuelMap[normalized]; ok {
		return mapped
	}

	return FuelType(normalized)
}
