// Package engine implements the annual car ownership cost calculation.
//
// The engine is a pure, synchronous function over its input record and the
// injected lookup tables. It performs no I/O, holds no mutable state and is
// safe for concurrent use. It is also total: any combination of numeric
// inputs produces a defined breakdown, never an error.
package engine

import (
	"math"
	"strconv"

	"car-cost-engine/internal/models"
)

// Engine calculates annual ownership cost breakdowns.
type Engine struct {
	tables *Tables
}

// New creates an engine with the given tables. A nil tables value selects
// the Swedish market defaults.
func New(tables *Tables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{tables: tables}
}

// Tables exposes the lookup tables the engine was built with.
func (e *Engine) Tables() *Tables {
	return e.tables
}

// DepreciationRateForAge returns the base depreciation rate for a vehicle of
// the given age, before fuel and override multipliers.
func (e *Engine) DepreciationRateForAge(age float64) float64 {
	return e.tables.RateForAge(age)
}

// CalculateCosts turns one calculator input into a cost breakdown. Every
// component is rounded to whole SEK individually; the aggregates are sums of
// the rounded components, so the cross-field identities in the CostBreakdown
// doc hold exactly.
func (e *Engine) CalculateCosts(in *models.CalculatorInput) *models.CostBreakdown {
	fuel := roundSEK(e.fuelCost(in))
	depreciation := e.averageAnnualDepreciation(in)
	maintenance := e.maintenanceCost(in)
	tires := e.tireCost(in)
	monthlyLoanPayment, financing := e.financingCost(in)

	tax := roundSEK(e.taxCost(in))
	insurance := roundSEK(in.Insurance * 12)
	parking := roundSEK(in.Parking * 12)
	washingCare := roundSEK(in.WashingCare * 12)

	variableCosts := fuel + maintenance + tires
	fixedCosts := tax + insurance + parking + washingCare + financing + depreciation
	totalAnnual := variableCosts + fixedCosts
	monthlyTotal := roundSEK(float64(totalAnnual) / 12)

	costPerMil, costPerKm := perDistance(totalAnnual, in.AnnualMileage)

	return &models.CostBreakdown{
		Fuel:               fuel,
		Depreciation:       depreciation,
		Tax:                tax,
		Maintenance:        maintenance,
		Tires:              tires,
		Insurance:          insurance,
		Parking:            parking,
		WashingCare:        washingCare,
		Financing:          financing,
		MonthlyLoanPayment: monthlyLoanPayment,
		VariableCosts:      variableCosts,
		FixedCosts:         fixedCosts,
		TotalAnnual:        totalAnnual,
		MonthlyTotal:       monthlyTotal,
		CostPerMil:         costPerMil,
		CostPerKm:          costPerKm,
	}
}

// averageAnnualDepreciation simulates the value decline year by year over the
// whole ownership horizon and returns the average annual figure. The
// simulation matters: the car crosses age brackets while owned, so a single
// rate multiplied out would misprice multi-year ownership.
func (e *Engine) averageAnnualDepreciation(in *models.CalculatorInput) int64 {
	if in.OwnershipYears <= 0 {
		return 0
	}

	fuelMult := e.tables.fuelMultiplier(in.PrimaryFuelType)
	overrideFact := e.tables.overrideFactor(in.DepreciationRate)
	startAge := in.StartAge()

	currentValue := in.PurchasePrice
	totalDepreciation := 0.0

	for year := 0; year < in.OwnershipYears; year++ {
		rate := e.tables.RateForAge(startAge+float64(year)) * fuelMult * overrideFact
		// A year can never lose more than the full remaining value.
		if rate > 1 {
			rate = 1
		}
		if rate < 0 {
			rate = 0
		}
		yearDepreciation := currentValue * rate
		totalDepreciation += yearDepreciation
		currentValue -= yearDepreciation
	}

	return roundSEK(totalDepreciation / float64(in.OwnershipYears))
}

// fuelCost computes the annual fuel spend. With a secondary fuel the distance
// is split by share; both legs intentionally use the same consumption figure,
// which is the documented simplification for plug-in hybrids.
func (e *Engine) fuelCost(in *models.CalculatorInput) float64 {
	distanceKm := in.AnnualMileage * 10

	if !in.HasSecondaryFuel {
		return in.FuelConsumption * in.PrimaryFuelPrice / 10 * distanceKm
	}

	share := in.SecondaryFuelShare / 100
	primary := in.FuelConsumption * in.PrimaryFuelPrice * (1 - share) / 10 * distanceKm
	secondary := in.FuelConsumption * in.SecondaryFuelPrice * share / 10 * distanceKm
	return primary + secondary
}

// financingCost resolves the financing branch and returns the rounded monthly
// payment plus the annual figure. The annual figure is always the rounded
// monthly payment times twelve, never an independent computation.
func (e *Engine) financingCost(in *models.CalculatorInput) (monthly, annual int64) {
	switch in.FinancingType {
	case models.FinancingTypeLeasing:
		monthly = roundSEK(in.MonthlyLeasingFee)
	case models.FinancingTypeLoan:
		monthly = roundSEK(e.monthlyLoanPayment(in))
	default:
		// Cash purchase carries no financing cost.
		return 0, 0
	}
	return monthly, monthly * 12
}

// monthlyLoanPayment computes the unrounded monthly loan payment for the
// annuity and residual-value loan variants.
func (e *Engine) monthlyLoanPayment(in *models.CalculatorInput) float64 {
	principal := in.PurchasePrice * (1 - in.DownPaymentPercent/100)
	numPayments := in.LoanYears * 12

	if in.LoanType == models.LoanTypeResidual {
		// The residual (balloon) part is not amortized. A residual above the
		// principal is degenerate but defined: nothing is amortized.
		residual := in.PurchasePrice * in.ResidualValuePercent / 100
		amortizeAmount := math.Max(0, principal-residual)

		monthlyAmort := 0.0
		if numPayments > 0 {
			monthlyAmort = amortizeAmount / float64(numPayments)
		}

		// Interest on the average of start and residual balance.
		avgBalance := (principal + residual) / 2
		monthlyInterest := avgBalance * (in.InterestRate / 100 / 12)

		return monthlyAmort + monthlyInterest + in.MonthlyAdminFee
	}

	// Annuity: fixed payment amortizing the whole principal.
	basePayment := 0.0
	if numPayments > 0 {
		monthlyRate := in.InterestRate / 100 / 12
		if monthlyRate == 0 {
			basePayment = principal / float64(numPayments)
		} else {
			growth := math.Pow(1+monthlyRate, float64(numPayments))
			basePayment = principal * monthlyRate * growth / (growth - 1)
		}
	}

	return basePayment + in.MonthlyAdminFee
}

// maintenanceCost scales the table cost linearly from the reference mileage.
func (e *Engine) maintenanceCost(in *models.CalculatorInput) int64 {
	baseCost := e.tables.maintenanceBase(in.VehicleType, in.MaintenanceLevel)
	return roundSEK(baseCost * in.AnnualMileage / e.tables.MaintenanceReferenceMileage)
}

// tireCost returns the user override when set and non-zero, otherwise the
// tire set cost spread over the replacement cycle. The cycle is clamped:
// tires age out after TireCycleMaxYears no matter how little is driven, and
// are never replaced more often than every TireCycleMinYears.
func (e *Engine) tireCost(in *models.CalculatorInput) int64 {
	if override, ok := in.TireOverride(); ok {
		return roundSEK(override)
	}

	distanceKm := in.AnnualMileage * 10
	replacementYears := e.tables.TireCycleMaxYears
	if distanceKm > 0 {
		replacementYears = e.tables.TireCycleKm / distanceKm
		if replacementYears < e.tables.TireCycleMinYears {
			replacementYears = e.tables.TireCycleMinYears
		}
		if replacementYears > e.tables.TireCycleMaxYears {
			replacementYears = e.tables.TireCycleMaxYears
		}
	}

	return roundSEK(e.tables.tireSetCost(in.VehicleType) / replacementYears)
}

// taxCost is the plain annual tax plus the malus surcharge when flagged.
func (e *Engine) taxCost(in *models.CalculatorInput) float64 {
	tax := in.AnnualTax
	if in.HasMalusTax {
		tax += in.MalusTaxAmount
	}
	return tax
}

// perDistance derives the per-mil and per-km metrics. Zero mileage is
// defined as zero cost per distance rather than a division by zero.
func perDistance(totalAnnual int64, annualMileage float64) (int64, string) {
	if annualMileage == 0 {
		return 0, "0.00"
	}
	costPerMil := roundSEK(float64(totalAnnual) / annualMileage)
	costPerKm := strconv.FormatFloat(float64(totalAnnual)/(annualMileage*10), 'f', 2, 64)
	return costPerMil, costPerKm
}

// roundSEK rounds to the nearest whole SEK, halves away from zero.
func roundSEK(v float64) int64 {
	return int64(math.Round(v))
}
