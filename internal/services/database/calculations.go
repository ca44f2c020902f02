// Package database provides database operations for the car cost engine.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"car-cost-engine/internal/models"
)

// CalculationRepository handles the calculation history.
type CalculationRepository struct {
	db *DB
}

// NewCalculationRepository creates a new calculation repository.
func NewCalculationRepository(db *DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// Insert appends a calculation record. A zero ID is replaced with a fresh
// UUID; the generated ID and timestamp are written back to the record.
func (r *CalculationRepository) Insert(ctx context.Context, rec *models.CalculationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	inputJSON, err := json.Marshal(rec.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal calculation input: %w", err)
	}
	breakdownJSON, err := json.Marshal(rec.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal calculation breakdown: %w", err)
	}

	query := `
		INSERT INTO calculations (id, profile_key, input, breakdown, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, rec.ID, rec.ProfileKey, inputJSON, breakdownJSON, rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	return nil
}

// GetByID retrieves one calculation record.
func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CalculationRecord, error) {
	query := `
		SELECT id, profile_key, input, breakdown, created_at
		FROM calculations
		WHERE id = $1`

	rec, err := scanCalculation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCalculationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}

	return rec, nil
}

// ListByProfile returns the most recent calculations for a profile key,
// newest first. A non-positive limit means no limit.
func (r *CalculationRepository) ListByProfile(ctx context.Context, profileKey string, limit int) ([]*models.CalculationRecord, error) {
	if profileKey == "" {
		return nil, models.ErrEmptyProfileKey
	}

	query := `
		SELECT id, profile_key, input, breakdown, created_at
		FROM calculations
		WHERE profile_key = $1
		ORDER BY created_at DESC`
	args := []interface{}{profileKey}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	records := make([]*models.CalculationRecord, 0)
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteByProfile removes all history for a profile key and returns the
// number of deleted records.
func (r *CalculationRepository) DeleteByProfile(ctx context.Context, profileKey string) (int64, error) {
	if profileKey == "" {
		return 0, models.ErrEmptyProfileKey
	}

	affected, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE profile_key = $1`, profileKey)
	if err != nil {
		return 0, fmt.Errorf("failed to delete calculations: %w", err)
	}

	return affected, nil
}

// scanCalculation reads one calculation row.
func scanCalculation(row pgx.Row) (*models.CalculationRecord, error) {
	var rec models.CalculationRecord
	var inputJSON, breakdownJSON []byte

	if err := row.Scan(&rec.ID, &rec.ProfileKey, &inputJSON, &breakdownJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputJSON, &rec.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calculation input: %w", err)
	}
	if err := json.Unmarshal(breakdownJSON, &rec.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calculation breakdown: %w", err)
	}

	return &rec, nil
}
