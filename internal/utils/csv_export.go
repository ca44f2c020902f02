// Package utils provides utility functions for the car cost engine.
package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"car-cost-engine/internal/models"
)

// historyHeader defines the column order of history exports.
var historyHeader = []string{
	"id",
	"created_at",
	"purchase_price",
	"financing_type",
	"annual_mileage_mil",
	"fuel",
	"depreciation",
	"tax",
	"maintenance",
	"tires",
	"insurance",
	"parking",
	"washing_care",
	"financing",
	"variable_costs",
	"fixed_costs",
	"total_annual",
	"monthly_total",
	"cost_per_mil",
	"cost_per_km",
}

// BuildHistoryCSV renders calculation history records as a CSV document.
func BuildHistoryCSV(records []*models.CalculationRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(historyHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID.String(),
			rec.CreatedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(rec.Input.PurchasePrice, 'f', -1, 64),
			string(rec.Input.FinancingType),
			strconv.FormatFloat(rec.Input.AnnualMileage, 'f', -1, 64),
			strconv.FormatInt(rec.Breakdown.Fuel, 10),
			strconv.FormatInt(rec.Breakdown.Depreciation, 10),
			strconv.FormatInt(rec.Breakdown.Tax, 10),
			strconv.FormatInt(rec.Breakdown.Maintenance, 10),
			strconv.FormatInt(rec.Breakdown.Tires, 10),
			strconv.FormatInt(rec.Breakdown.Insurance, 10),
			strconv.FormatInt(rec.Breakdown.Parking, 10),
			strconv.FormatInt(rec.Breakdown.WashingCare, 10),
			strconv.FormatInt(rec.Breakdown.Financing, 10),
			strconv.FormatInt(rec.Breakdown.VariableCosts, 10),
			strconv.FormatInt(rec.Breakdown.FixedCosts, 10),
			strconv.FormatInt(rec.Breakdown.TotalAnnual, 10),
			strconv.FormatInt(rec.Breakdown.MonthlyTotal, 10),
			strconv.FormatInt(rec.Breakdown.CostPerMil, 10),
			rec.Breakdown.CostPerKm,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
