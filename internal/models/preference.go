// Package models defines the data structures for the car cost engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Preference is a stored calculator input keyed by a caller-chosen profile
// key. The store has plain key-value CRUD semantics; the input is persisted
// as one JSON document.
type Preference struct {
	ProfileKey string          `json:"profile_key"`
	Input      CalculatorInput `json:"input"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CalculationRecord is one entry in the calculation history: the input that
// was calculated and the breakdown it produced, both as they were at the time.
type CalculationRecord struct {
	ID         uuid.UUID       `json:"id"`
	ProfileKey string          `json:"profile_key"`
	Input      CalculatorInput `json:"input"`
	Breakdown  CostBreakdown   `json:"breakdown"`
	CreatedAt  time.Time       `json:"created_at"`
}
