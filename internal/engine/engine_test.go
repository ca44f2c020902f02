package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-cost-engine/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

// baseInput returns a plain petrol cash purchase that the individual tests
// mutate.
func baseInput() models.CalculatorInput {
	return models.CalculatorInput{
		PurchasePrice:    300000,
		FuelConsumption:  0.7,
		PrimaryFuelType:  models.FuelTypePetrol,
		PrimaryFuelPrice: 18.5,
		AnnualMileage:    1500,
		VehicleType:      models.VehicleTypeNormal,
		MaintenanceLevel: models.MaintenanceLevelNormal,
		DepreciationRate: models.DepreciationRateNormal,
		OwnershipYears:   5,
		Insurance:        500,
		Parking:          300,
		WashingCare:      100,
		FinancingType:    models.FinancingTypeCash,
		AnnualTax:        2000,
	}
}

func TestCalculateCosts_FuelPetrol(t *testing.T) {
	in := baseInput()
	breakdown := New(nil).CalculateCosts(&in)

	// 0.7 l/mil * 18.5 kr/l / 10 * 15000 km
	assert.Equal(t, int64(19425), breakdown.Fuel)
}

func TestCalculateCosts_FuelPluginHybrid(t *testing.T) {
	in := baseInput()
	in.FuelConsumption = 0.5
	in.PrimaryFuelPrice = 18.5
	in.HasSecondaryFuel = true
	in.SecondaryFuelType = models.FuelTypeElectric
	in.SecondaryFuelPrice = 2.5
	in.SecondaryFuelShare = 50

	breakdown := New(nil).CalculateCosts(&in)

	// Both legs share the consumption figure: 6937.5 + 937.5
	assert.Equal(t, int64(7875), breakdown.Fuel)
}

func TestCalculateCosts_AnnuityLoanZeroInterest(t *testing.T) {
	in := baseInput()
	in.FinancingType = models.FinancingTypeLoan
	in.LoanType = models.LoanTypeAnnuity
	in.DownPaymentPercent = 20
	in.InterestRate = 0
	in.LoanYears = 3
	in.MonthlyAdminFee = 60

	breakdown := New(nil).CalculateCosts(&in)

	assert.Equal(t, int64(6727), breakdown.MonthlyLoanPayment)
	assert.Equal(t, int64(80724), breakdown.Financing)
}

func TestCalculateCosts_AnnuityLoanWithInterest(t *testing.T) {
	in := baseInput()
	in.FinancingType = models.FinancingTypeLoan
	in.LoanType = models.LoanTypeAnnuity
	in.DownPaymentPercent = 20
	in.InterestRate = 5
	in.LoanYears = 3
	in.MonthlyAdminFee = 0

	breakdown := New(nil).CalculateCosts(&in)

	// Annuity on 240000 over 36 months at 5% is about 7192 kr/month.
	assert.InDelta(t, 7192, breakdown.MonthlyLoanPayment, 1)
	assert.Equal(t, breakdown.MonthlyLoanPayment*12, breakdown.Financing)
}

func TestCalculateCosts_ResidualLoan(t *testing.T) {
	in := baseInput()
	in.FinancingType = models.FinancingTypeLoan
	in.LoanType = models.LoanTypeResidual
	in.DownPaymentPercent = 20
	in.ResidualValuePercent = 50
	in.InterestRate = 5
	in.LoanYears = 3
	in.MonthlyAdminFee = 60

	breakdown := New(nil).CalculateCosts(&in)

	// amort 90000/36 + interest on avg(240000,150000) at 5%/12 + 60
	assert.Equal(t, int64(3373), breakdown.MonthlyLoanPayment)
	assert.Equal(t, breakdown.MonthlyLoanPayment*12, breakdown.Financing)
}

func TestCalculateCosts_ResidualAbovePrincipal(t *testing.T) {
	in := baseInput()
	in.FinancingType = models.FinancingTypeLoan
	in.LoanType = models.LoanTypeResidual
	in.DownPaymentPercent = 20
	in.ResidualValuePercent = 120 // degenerate but defined
	in.InterestRate = 5
	in.LoanYears = 3

	breakdown := New(nil).CalculateCosts(&in)

	// Nothing is amortized, only interest on the average balance remains.
	avgBalance := (240000.0 + 360000.0) / 2
	expected := roundSEK(avgBalance * 0.05 / 12)
	assert.Equal(t, expected, breakdown.MonthlyLoanPayment)
	assert.Equal(t, breakdown.MonthlyLoanPayment*12, breakdown.Financing)
}

func TestCalculateCosts_CashAndLeasing(t *testing.T) {
	cash := baseInput()
	breakdown := New(nil).CalculateCosts(&cash)
	assert.Zero(t, breakdown.MonthlyLoanPayment)
	assert.Zero(t, breakdown.Financing)

	leasing := baseInput()
	leasing.FinancingType = models.FinancingTypeLeasing
	leasing.MonthlyLeasingFee = 4495
	leasing.LeasingIncludesInsurance = true

	breakdown = New(nil).CalculateCosts(&leasing)
	assert.Equal(t, int64(4495), breakdown.MonthlyLoanPayment)
	assert.Equal(t, int64(4495*12), breakdown.Financing)
}

func TestCalculateCosts_Invariants(t *testing.T) {
	loan := baseInput()
	loan.FinancingType = models.FinancingTypeLoan
	loan.LoanType = models.LoanTypeAnnuity
	loan.DownPaymentPercent = 15
	loan.InterestRate = 6.95
	loan.LoanYears = 5
	loan.MonthlyAdminFee = 45

	residual := baseInput()
	residual.FinancingType = models.FinancingTypeLoan
	residual.LoanType = models.LoanTypeResidual
	residual.DownPaymentPercent = 0
	residual.ResidualValuePercent = 55
	residual.InterestRate = 4.5
	residual.LoanYears = 4

	phev := baseInput()
	phev.HasSecondaryFuel = true
	phev.SecondaryFuelPrice = 2.5
	phev.SecondaryFuelShare = 65
	phev.HasMalusTax = true
	phev.MalusTaxAmount = 4500

	zeroMileage := baseInput()
	zeroMileage.AnnualMileage = 0

	inputs := map[string]models.CalculatorInput{
		"cash":         baseInput(),
		"annuity":      loan,
		"residual":     residual,
		"phev":         phev,
		"zero_mileage": zeroMileage,
	}

	eng := New(nil)
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			in := in
			b := eng.CalculateCosts(&in)

			assert.Equal(t, b.Fuel+b.Maintenance+b.Tires, b.VariableCosts)
			assert.Equal(t, b.Tax+b.Insurance+b.Parking+b.WashingCare+b.Financing+b.Depreciation, b.FixedCosts)
			assert.Equal(t, b.VariableCosts+b.FixedCosts, b.TotalAnnual)
			assert.Equal(t, roundSEK(float64(b.TotalAnnual)/12), b.MonthlyTotal)
			assert.Equal(t, b.MonthlyLoanPayment*12, b.Financing)
			assert.GreaterOrEqual(t, b.Depreciation, int64(0))
		})
	}
}

func TestCalculateCosts_TaxWithMalus(t *testing.T) {
	in := baseInput()
	in.AnnualTax = 1800
	in.HasMalusTax = true
	in.MalusTaxAmount = 5200

	breakdown := New(nil).CalculateCosts(&in)
	assert.Equal(t, int64(7000), breakdown.Tax)

	in.HasMalusTax = false
	breakdown = New(nil).CalculateCosts(&in)
	assert.Equal(t, int64(1800), breakdown.Tax)
}

func TestCalculateCosts_FixedMonthlyAmounts(t *testing.T) {
	in := baseInput()
	in.Insurance = 512.5
	in.Parking = 0
	in.WashingCare = 99

	breakdown := New(nil).CalculateCosts(&in)
	assert.Equal(t, int64(6150), breakdown.Insurance)
	assert.Equal(t, int64(0), breakdown.Parking)
	assert.Equal(t, int64(1188), breakdown.WashingCare)
}

func TestDepreciation_NeverNegative(t *testing.T) {
	eng := New(nil)
	fuels := []models.FuelType{
		models.FuelTypePetrol, models.FuelTypeDiesel, models.FuelTypeElectric,
		models.FuelTypePluginHybrid, models.FuelType("hydrogen"),
	}
	overrides := []models.DepreciationRate{
		models.DepreciationRateLow, models.DepreciationRateNormal, models.DepreciationRateHigh,
	}
	ages := []float64{0, 1, 2.5, 5, 8, 15, 40}
	years := []int{0, 1, 3, 10, 20}

	for _, fuel := range fuels {
		for _, override := range overrides {
			for _, age := range ages {
				for _, owned := range years {
					in := baseInput()
					in.PrimaryFuelType = fuel
					in.DepreciationRate = override
					in.VehicleAge = floatPtr(age)
					in.OwnershipYears = owned

					b := eng.CalculateCosts(&in)
					assert.GreaterOrEqualf(t, b.Depreciation, int64(0),
						"fuel=%s override=%s age=%v years=%d", fuel, override, age, owned)
				}
			}
		}
	}
}

func TestDepreciation_FirstYearNewCar(t *testing.T) {
	in := baseInput()
	in.OwnershipYears = 1
	in.VehicleAge = nil

	breakdown := New(nil).CalculateCosts(&in)

	// One simulated year at the new-car rate: 300000 * 0.25
	assert.Equal(t, int64(75000), breakdown.Depreciation)
}

func TestDepreciation_CompoundsAcrossBrackets(t *testing.T) {
	in := baseInput()
	in.OwnershipYears = 3
	in.VehicleAge = nil

	breakdown := New(nil).CalculateCosts(&in)

	// Year 0: 25% of 300000, year 1 and 2: 15% of the shrinking base.
	value := 300000.0
	total := 0.0
	for _, rate := range []float64{0.25, 0.15, 0.15} {
		d := value * rate
		total += d
		value -= d
	}
	assert.Equal(t, roundSEK(total/3), breakdown.Depreciation)
}

func TestDepreciation_ZeroOwnershipYears(t *testing.T) {
	in := baseInput()
	in.OwnershipYears = 0

	breakdown := New(nil).CalculateCosts(&in)
	assert.Zero(t, breakdown.Depreciation)
}

func TestDepreciation_RespectsNullAge(t *testing.T) {
	aged := baseInput()
	aged.OwnershipYears = 1
	aged.VehicleAge = floatPtr(8)

	fresh := baseInput()
	fresh.OwnershipYears = 1
	fresh.VehicleAge = nil

	eng := New(nil)
	assert.Less(t, eng.CalculateCosts(&aged).Depreciation, eng.CalculateCosts(&fresh).Depreciation)
	// 8-year-old car sits in the flat 4% bracket.
	assert.Equal(t, int64(12000), eng.CalculateCosts(&aged).Depreciation)
}

func TestTireCost_CycleClamp(t *testing.T) {
	eng := New(nil)
	tests := []struct {
		name     string
		mileage  float64 // mil per year
		expected int64
	}{
		// 60000 km / 40000 km = 1.5 years, clamped up to 2.
		{"high_mileage_clamped_to_min", 4000, 4000},
		// 60000 km / 5000 km = 12 years, clamped down to 5.
		{"low_mileage_clamped_to_max", 500, 1600},
		// 60000 km / 20000 km = 3 years, inside the band.
		{"unclamped_cycle", 2000, 2667},
		// No driving at all still ages the tires out after 5 years.
		{"zero_mileage", 0, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.AnnualMileage = tt.mileage
			breakdown := eng.CalculateCosts(&in)
			assert.Equal(t, tt.expected, breakdown.Tires)
		})
	}
}

func TestTireCost_Override(t *testing.T) {
	in := baseInput()
	in.AnnualTireCost = floatPtr(3200)

	breakdown := New(nil).CalculateCosts(&in)
	assert.Equal(t, int64(3200), breakdown.Tires)

	// A zero override is ignored and the cycle cost applies:
	// 60000 km / 15000 km = 4 years, 8000 / 4.
	in.AnnualTireCost = floatPtr(0)
	breakdown = New(nil).CalculateCosts(&in)
	assert.Equal(t, int64(2000), breakdown.Tires)
}

func TestMaintenanceCost_ScalesWithMileage(t *testing.T) {
	eng := New(nil)

	in := baseInput()
	in.AnnualMileage = 1500
	assert.Equal(t, int64(8000), eng.CalculateCosts(&in).Maintenance)

	in.AnnualMileage = 750
	assert.Equal(t, int64(4000), eng.CalculateCosts(&in).Maintenance)

	in.AnnualMileage = 0
	assert.Zero(t, eng.CalculateCosts(&in).Maintenance)

	in.AnnualMileage = 1500
	in.VehicleType = models.VehicleTypeLuxury
	in.MaintenanceLevel = models.MaintenanceLevelHigh
	assert.Equal(t, int64(22000), eng.CalculateCosts(&in).Maintenance)
}

func TestCalculateCosts_ZeroMileageGuard(t *testing.T) {
	in := baseInput()
	in.AnnualMileage = 0

	breakdown := New(nil).CalculateCosts(&in)

	assert.Zero(t, breakdown.Fuel)
	assert.Zero(t, breakdown.Maintenance)
	assert.Equal(t, int64(0), breakdown.CostPerMil)
	assert.Equal(t, "0.00", breakdown.CostPerKm)
}

func TestCalculateCosts_PerDistanceMetrics(t *testing.T) {
	in := baseInput()
	breakdown := New(nil).CalculateCosts(&in)

	require.NotZero(t, breakdown.TotalAnnual)
	assert.Equal(t, roundSEK(float64(breakdown.TotalAnnual)/1500), breakdown.CostPerMil)
	expectedKm := fmt.Sprintf("%.2f", float64(breakdown.TotalAnnual)/15000)
	assert.Equal(t, expectedKm, breakdown.CostPerKm)
}

func TestCalculateCosts_InjectedTables(t *testing.T) {
	tables := DefaultTables()
	tables.DepreciationCurve = []AgeBracket{{MinAge: 0, Rate: 0.5}}
	tables.FuelMultipliers = map[models.FuelType]float64{}

	in := baseInput()
	in.OwnershipYears = 1

	breakdown := New(tables).CalculateCosts(&in)
	assert.Equal(t, int64(150000), breakdown.Depreciation)
}

func TestCalculateCosts_ExtremeOverrideClamped(t *testing.T) {
	tables := DefaultTables()
	tables.DepreciationOverrides[models.DepreciationRateHigh] = 50 // absurd factor

	in := baseInput()
	in.DepreciationRate = models.DepreciationRateHigh
	in.OwnershipYears = 1

	// The per-year rate clamps at 1: the car cannot lose more than its value.
	breakdown := New(tables).CalculateCosts(&in)
	assert.Equal(t, int64(300000), breakdown.Depreciation)
}
