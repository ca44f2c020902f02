// Package models defines the data structures for the car cost engine.
package models

// FuelType identifies the energy source a vehicle runs on.
type FuelType string

const (
	FuelTypePetrol       FuelType = "petrol"
	FuelTypeDiesel       FuelType = "diesel"
	FuelTypeElectric     FuelType = "electric"
	FuelTypeHybrid       FuelType = "hybrid"
	FuelTypePluginHybrid FuelType = "plugin_hybrid"
	FuelTypeEthanol      FuelType = "ethanol"
)

// VehicleType drives the maintenance and tire base cost tables.
type VehicleType string

const (
	VehicleTypeSimple VehicleType = "simple"
	VehicleTypeNormal VehicleType = "normal"
	VehicleTypeLarge  VehicleType = "large"
	VehicleTypeLuxury VehicleType = "luxury"
)

// ValidVehicleTypes returns all valid vehicle type values.
func ValidVehicleTypes() []VehicleType {
	return []VehicleType{
		VehicleTypeSimple,
		VehicleTypeNormal,
		VehicleTypeLarge,
		VehicleTypeLuxury,
	}
}

// IsValid checks if the vehicle type is valid.
func (v VehicleType) IsValid() bool {
	for _, valid := range ValidVehicleTypes() {
		if v == valid {
			return true
		}
	}
	return false
}

// MaintenanceLevel selects a column in the maintenance cost table.
type MaintenanceLevel string

const (
	MaintenanceLevelLow    MaintenanceLevel = "low"
	MaintenanceLevelNormal MaintenanceLevel = "normal"
	MaintenanceLevelHigh   MaintenanceLevel = "high"
)

// IsValid checks if the maintenance level is valid.
func (m MaintenanceLevel) IsValid() bool {
	return m == MaintenanceLevelLow || m == MaintenanceLevelNormal || m == MaintenanceLevelHigh
}

// DepreciationRate is the user override on the age-based depreciation curve.
type DepreciationRate string

const (
	DepreciationRateLow    DepreciationRate = "low"
	DepreciationRateNormal DepreciationRate = "normal"
	DepreciationRateHigh   DepreciationRate = "high"
)

// IsValid checks if the depreciation rate is valid.
func (d DepreciationRate) IsValid() bool {
	return d == DepreciationRateLow || d == DepreciationRateNormal || d == DepreciationRateHigh
}

// FinancingType selects how the purchase is financed.
type FinancingType string

const (
	FinancingTypeCash    FinancingType = "cash"
	FinancingTypeLoan    FinancingType = "loan"
	FinancingTypeLeasing FinancingType = "leasing"
)

// IsValid checks if the financing type is valid.
func (f FinancingType) IsValid() bool {
	return f == FinancingTypeCash || f == FinancingTypeLoan || f == FinancingTypeLeasing
}

// LoanType selects the amortization model for loan financing.
type LoanType string

const (
	LoanTypeAnnuity  LoanType = "annuity"
	LoanTypeResidual LoanType = "residual"
)

// IsValid checks if the loan type is valid.
func (l LoanType) IsValid() bool {
	return l == LoanTypeAnnuity || l == LoanTypeResidual
}

// CalculatorInput is one calculation request. Consumption figures are per mil
// (10 km), mileage is in mil per year, recurring amounts are monthly unless
// the field name says otherwise. The engine treats every combination of
// values as defined input and never rejects it.
type CalculatorInput struct {
	PurchasePrice    float64  `json:"purchase_price"`
	FuelConsumption  float64  `json:"fuel_consumption"`
	PrimaryFuelType  FuelType `json:"primary_fuel_type"`
	PrimaryFuelPrice float64  `json:"primary_fuel_price"`

	HasSecondaryFuel   bool     `json:"has_secondary_fuel"`
	SecondaryFuelType  FuelType `json:"secondary_fuel_type,omitempty"`
	SecondaryFuelPrice float64  `json:"secondary_fuel_price,omitempty"`
	SecondaryFuelShare float64  `json:"secondary_fuel_share,omitempty"` // percent of distance, 0-100

	AnnualMileage float64 `json:"annual_mileage"` // mil per year

	VehicleType      VehicleType      `json:"vehicle_type"`
	MaintenanceLevel MaintenanceLevel `json:"maintenance_level"`
	DepreciationRate DepreciationRate `json:"depreciation_rate"`
	VehicleAge       *float64         `json:"vehicle_age"` // years at start of ownership, nil means new
	OwnershipYears   int              `json:"ownership_years"`

	Insurance       float64 `json:"insurance"`
	Parking         float64 `json:"parking"`
	WashingCare     float64 `json:"washing_care"`
	MonthlyAdminFee float64 `json:"monthly_admin_fee"`

	FinancingType        FinancingType `json:"financing_type"`
	LoanType             LoanType      `json:"loan_type,omitempty"`
	LoanAmount           float64       `json:"loan_amount,omitempty"`
	DownPaymentPercent   float64       `json:"down_payment_percent,omitempty"`
	ResidualValuePercent float64       `json:"residual_value_percent,omitempty"`
	InterestRate         float64       `json:"interest_rate,omitempty"` // annual percent
	LoanYears            int           `json:"loan_years,omitempty"`

	LeasingType              string  `json:"leasing_type,omitempty"`
	MonthlyLeasingFee        float64 `json:"monthly_leasing_fee,omitempty"`
	LeasingIncludesInsurance bool    `json:"leasing_includes_insurance,omitempty"`

	AnnualTireCost *float64 `json:"annual_tire_cost,omitempty"` // overrides the computed cycle cost when set and non-zero

	AnnualTax      float64 `json:"annual_tax"`
	HasMalusTax    bool    `json:"has_malus_tax"`
	MalusTaxAmount float64 `json:"malus_tax_amount,omitempty"`
}

// StartAge resolves the nullable vehicle age; nil means a brand new car.
func (in *CalculatorInput) StartAge() float64 {
	if in.VehicleAge == nil {
		return 0
	}
	return *in.VehicleAge
}

// TireOverride resolves the optional tire cost override. The override only
// applies when it is present and non-zero.
func (in *CalculatorInput) TireOverride() (float64, bool) {
	if in.AnnualTireCost == nil || *in.AnnualTireCost == 0 {
		return 0, false
	}
	return *in.AnnualTireCost, true
}

// ApplyDefaults fills unset enum fields with their neutral values so that a
// sparse request from a preference record or a listing adapter still selects
// a row in every lookup table.
func (in *CalculatorInput) ApplyDefaults() {
	if !in.VehicleType.IsValid() {
		in.VehicleType = VehicleTypeNormal
	}
	if !in.MaintenanceLevel.IsValid() {
		in.MaintenanceLevel = MaintenanceLevelNormal
	}
	if !in.DepreciationRate.IsValid() {
		in.DepreciationRate = DepreciationRateNormal
	}
	if !in.FinancingType.IsValid() {
		in.FinancingType = FinancingTypeCash
	}
	if !in.LoanType.IsValid() {
		in.LoanType = LoanTypeAnnuity
	}
}
