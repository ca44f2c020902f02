package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFuelType(t *testing.T) {
	tests := []struct {
		input    string
		expected FuelType
	}{
		{"petrol", FuelTypePetrol},
		{"Bensin", FuelTypePetrol},
		{"GASOLINE", FuelTypePetrol},
		{"diesel", FuelTypeDiesel},
		{"el", FuelTypeElectric},
		{"EV", FuelTypeElectric},
		{"Electric", FuelTypeElectric},
		{"laddhybrid", FuelTypePluginHybrid},
		{"Plug-In", FuelTypePluginHybrid},
		{"PHEV", FuelTypePluginHybrid},
		{"hybrid", FuelTypeHybrid},
		{"mild hybrid", FuelTypeHybrid},
		{"etanol", FuelTypeEthanol},
		{"E85", FuelTypeEthanol},
		{"hydrogen", FuelType("hydrogen")}, // unknown passes through lowercased
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFuelType(tt.input))
		})
	}
}

func TestCalculatorInput_StartAge(t *testing.T) {
	in := CalculatorInput{}
	assert.Equal(t, 0.0, in.StartAge())

	age := 4.0
	in.VehicleAge = &age
	assert.Equal(t, 4.0, in.StartAge())
}

func TestCalculatorInput_TireOverride(t *testing.T) {
	in := CalculatorInput{}
	_, ok := in.TireOverride()
	assert.False(t, ok)

	zero := 0.0
	in.AnnualTireCost = &zero
	_, ok = in.TireOverride()
	assert.False(t, ok, "zero override counts as absent")

	cost := 4200.0
	in.AnnualTireCost = &cost
	v, ok := in.TireOverride()
	assert.True(t, ok)
	assert.Equal(t, 4200.0, v)
}

func TestCalculatorInput_ApplyDefaults(t *testing.T) {
	in := CalculatorInput{}
	in.ApplyDefaults()

	assert.Equal(t, VehicleTypeNormal, in.VehicleType)
	assert.Equal(t, MaintenanceLevelNormal, in.MaintenanceLevel)
	assert.Equal(t, DepreciationRateNormal, in.DepreciationRate)
	assert.Equal(t, FinancingTypeCash, in.FinancingType)
	assert.Equal(t, LoanTypeAnnuity, in.LoanType)
}

func TestCalculatorInput_ApplyDefaultsKeepsValidValues(t *testing.T) {
	in := CalculatorInput{
		VehicleType:      VehicleTypeLuxury,
		MaintenanceLevel: MaintenanceLevelHigh,
		DepreciationRate: DepreciationRateLow,
		FinancingType:    FinancingTypeLeasing,
		LoanType:         LoanTypeResidual,
	}
	in.ApplyDefaults()

	assert.Equal(t, VehicleTypeLuxury, in.VehicleType)
	assert.Equal(t, MaintenanceLevelHigh, in.MaintenanceLevel)
	assert.Equal(t, DepreciationRateLow, in.DepreciationRate)
	assert.Equal(t, FinancingTypeLeasing, in.FinancingType)
	assert.Equal(t, LoanTypeResidual, in.LoanType)
}

func TestVehicleType_IsValid(t *testing.T) {
	for _, v := range ValidVehicleTypes() {
		assert.True(t, v.IsValid())
	}
	assert.False(t, VehicleType("van").IsValid())
	assert.False(t, VehicleType("").IsValid())
}
