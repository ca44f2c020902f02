// Package models defines the data structures for the car cost engine.
package models

// CostBreakdown is the annual cost picture for one CalculatorInput. All
// monetary fields are whole SEK; CostPerKm keeps two decimals and is carried
// as a string so presentation layers never re-round it.
//
// The aggregate fields are derived from the already-rounded components, so
//
//	VariableCosts = Fuel + Maintenance + Tires
//	FixedCosts    = Tax + Insurance + Parking + WashingCare + Financing + Depreciation
//	TotalAnnual   = VariableCosts + FixedCosts
//	Financing     = MonthlyLoanPayment * 12
//
// hold exactly, without floating point drift.
type CostBreakdown struct {
	Fuel         int64 `json:"fuel"`
	Depreciation int64 `json:"depreciation"`
	Tax          int64 `json:"tax"`
	Maintenance  int64 `json:"maintenance"`
	Tires        int64 `json:"tires"`
	Insurance    int64 `json:"insurance"`
	Parking      int64 `json:"parking"`
	WashingCare  int64 `json:"washing_care"`

	Financing          int64 `json:"financing"`
	MonthlyLoanPayment int64 `json:"monthly_loan_payment"`

	VariableCosts int64 `json:"variable_costs"`
	FixedCosts    int64 `json:"fixed_costs"`
	TotalAnnual   int64 `json:"total_annual"`
	MonthlyTotal  int64 `json:"monthly_total"`

	CostPerMil int64  `json:"cost_per_mil"`
	CostPerKm  string `json:"cost_per_km"`
}
