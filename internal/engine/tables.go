// Package engine implements the annual car ownership cost calculation.
package engine

import (
	"car-cost-engine/internal/models"
)

// AgeBracket is one step of the depreciation curve: the rate applies from
// MinAge (inclusive) up to the next bracket's MinAge.
type AgeBracket struct {
	MinAge float64
	Rate   float64
}

// Tables holds every lookup table the engine reads. Callers inject their own
// instance for deterministic tests or market-specific tuning; engine.New(nil)
// falls back to DefaultTables.
type Tables struct {
	// DepreciationCurve must be sorted by ascending MinAge and start at 0.
	DepreciationCurve []AgeBracket

	// FuelMultipliers scales the age-based depreciation rate per fuel type.
	// Missing fuel types count as 1.0.
	FuelMultipliers map[models.FuelType]float64

	// DepreciationOverrides maps the user override to a rate factor.
	// Missing values count as 1.0.
	DepreciationOverrides map[models.DepreciationRate]float64

	// MaintenanceBase is the annual maintenance cost in SEK at the reference
	// mileage, keyed by vehicle type and maintenance level.
	MaintenanceBase map[models.VehicleType]map[models.MaintenanceLevel]float64

	// MaintenanceReferenceMileage is the mileage (mil/year) the maintenance
	// table is calibrated at.
	MaintenanceReferenceMileage float64

	// TireSetCost is the price of a full tire set in SEK per vehicle type.
	TireSetCost map[models.VehicleType]float64

	// Tire replacement cycle: a set lasts TireCycleKm of driving, but is
	// replaced at least every TireCycleMaxYears and at most every
	// TireCycleMinYears regardless of mileage.
	TireCycleKm       float64
	TireCycleMinYears float64
	TireCycleMaxYears float64
}

// DefaultTables returns the Swedish market defaults.
func DefaultTables() *Tables {
	return &Tables{
		DepreciationCurve: []AgeBracket{
			{MinAge: 0, Rate: 0.25},
			{MinAge: 1, Rate: 0.15},
			{MinAge: 3, Rate: 0.10},
			{MinAge: 5, Rate: 0.06},
			{MinAge: 8, Rate: 0.04},
		},
		FuelMultipliers: map[models.FuelType]float64{
			models.FuelTypePetrol:       1.00,
			models.FuelTypeDiesel:       1.05,
			models.FuelTypeElectric:     1.15,
			models.FuelTypeHybrid:       1.00,
			models.FuelTypePluginHybrid: 1.10,
			models.FuelTypeEthanol:      1.10,
		},
		DepreciationOverrides: map[models.DepreciationRate]float64{
			models.DepreciationRateLow:    0.75,
			models.DepreciationRateNormal: 1.00,
			models.DepreciationRateHigh:   1.30,
		},
		MaintenanceBase: map[models.VehicleType]map[models.MaintenanceLevel]float64{
			models.VehicleTypeSimple: {
				models.MaintenanceLevelLow:    3000,
				models.MaintenanceLevelNormal: 5000,
				models.MaintenanceLevelHigh:   8000,
			},
			models.VehicleTypeNormal: {
				models.MaintenanceLevelLow:    5000,
				models.MaintenanceLevelNormal: 8000,
				models.MaintenanceLevelHigh:   12000,
			},
			models.VehicleTypeLarge: {
				models.MaintenanceLevelLow:    7000,
				models.MaintenanceLevelNormal: 11000,
				models.MaintenanceLevelHigh:   16000,
			},
			models.VehicleTypeLuxury: {
				models.MaintenanceLevelLow:    10000,
				models.MaintenanceLevelNormal: 15000,
				models.MaintenanceLevelHigh:   22000,
			},
		},
		MaintenanceReferenceMileage: 1500,
		TireSetCost: map[models.VehicleType]float64{
			models.VehicleTypeSimple: 6000,
			models.VehicleTypeNormal: 8000,
			models.VehicleTypeLarge:  10000,
			models.VehicleTypeLuxury: 14000,
		},
		TireCycleKm:       60000,
		TireCycleMinYears: 2,
		TireCycleMaxYears: 5,
	}
}

// RateForAge returns the base depreciation rate for a vehicle of the given
// age. An age exactly on a bracket boundary takes the older bracket's rate.
func (t *Tables) RateForAge(age float64) float64 {
	rate := 0.0
	for _, bracket := range t.DepreciationCurve {
		if age < bracket.MinAge {
			break
		}
		rate = bracket.Rate
	}
	return rate
}

// fuelMultiplier looks up the depreciation multiplier for a fuel type,
// defaulting to 1.0 for unknown fuels.
func (t *Tables) fuelMultiplier(fuel models.FuelType) float64 {
	if mult, ok := t.FuelMultipliers[fuel]; ok {
		return mult
	}
	return 1.0
}

// overrideFactor looks up the user depreciation override factor,
// defaulting to 1.0.
func (t *Tables) overrideFactor(rate models.DepreciationRate) float64 {
	if factor, ok := t.DepreciationOverrides[rate]; ok {
		return factor
	}
	return 1.0
}

// maintenanceBase looks up the reference maintenance cost, falling back to
// the normal/normal cell when a key is missing.
func (t *Tables) maintenanceBase(vehicle models.VehicleType, level models.MaintenanceLevel) float64 {
	row, ok := t.MaintenanceBase[vehicle]
	if !ok {
		row = t.MaintenanceBase[models.VehicleTypeNormal]
	}
	if cost, ok := row[level]; ok {
		return cost
	}
	return row[models.MaintenanceLevelNormal]
}

// tireSetCost looks up the tire set price, falling back to the normal
// vehicle class.
func (t *Tables) tireSetCost(vehicle models.VehicleType) float64 {
	if cost, ok := t.TireSetCost[vehicle]; ok {
		return cost
	}
	return t.TireSetCost[models.VehicleTypeNormal]
}
