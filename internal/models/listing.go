// Package models defines the data structures for the car cost engine.
package models

import "time"

// VehicleListing is the best-effort record handed over by a listing adapter.
// Every field is optional; nil means the adapter could not extract the value
// from the page. The record never carries errors, only gaps.
type VehicleListing struct {
	Source          string   `json:"source,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	FuelConsumption *float64 `json:"fuel_consumption,omitempty"` // per mil
	ModelYear       *int     `json:"model_year,omitempty"`
	AnnualTax       *float64 `json:"annual_tax,omitempty"`
	AnnualMileage   *float64 `json:"annual_mileage,omitempty"` // mil per year
}

// IsEmpty reports whether the adapter extracted nothing usable.
func (l *VehicleListing) IsEmpty() bool {
	return l.Price == nil && l.FuelType == nil && l.FuelConsumption == nil &&
		l.ModelYear == nil && l.AnnualTax == nil && l.AnnualMileage == nil
}

// Apply overlays the listing on a base input (stored preference or defaults).
// Each fallback path goes through its own resolver so the behavior of every
// missing field is testable on its own.
func (l *VehicleListing) Apply(base CalculatorInput) CalculatorInput {
	resolved := base
	resolved.PurchasePrice = resolveFloat(l.Price, base.PurchasePrice)
	resolved.FuelConsumption = resolveFloat(l.FuelConsumption, base.FuelConsumption)
	resolved.PrimaryFuelType = resolveFuelType(l.FuelType, base.PrimaryFuelType)
	resolved.AnnualTax = resolveFloat(l.AnnualTax, base.AnnualTax)
	resolved.AnnualMileage = resolveFloat(l.AnnualMileage, base.AnnualMileage)
	resolved.VehicleAge = resolveAgeFromModelYear(l.ModelYear, base.VehicleAge)
	return resolved
}

// resolveFloat takes the listing value when present, otherwise the base.
func resolveFloat(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// resolveFuelType normalizes a scraped fuel label, falling back to the base.
func resolveFuelType(v *string, fallback FuelType) FuelType {
	if v == nil || *v == "" {
		return fallback
	}
	return NormalizeFuelType(*v)
}

// resolveAgeFromModelYear derives the vehicle age from a listing model year.
// A model year in the future counts as age zero, not negative.
func resolveAgeFromModelYear(modelYear *int, fallback *float64) *float64 {
	if modelYear == nil {
		return fallback
	}
	age := float64(time.Now().Year() - *modelYear)
	if age < 0 {
		age = 0
	}
	return &age
}
