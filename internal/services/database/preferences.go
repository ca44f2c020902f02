// Package database provides database operations for the car cost engine.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"car-cost-engine/internal/models"
)

// PreferenceRepository handles the stored calculator preferences. It is a
// plain key-value store: one JSON input document per profile key.
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository.
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Save upserts the preference for a profile key.
func (r *PreferenceRepository) Save(ctx context.Context, pref *models.Preference) error {
	if pref.ProfileKey == "" {
		return models.ErrEmptyProfileKey
	}

	inputJSON, err := json.Marshal(pref.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal preference input: %w", err)
	}

	query := `
		INSERT INTO preferences (profile_key, input, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (profile_key) DO UPDATE SET
			input = EXCLUDED.input,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, pref.ProfileKey, inputJSON, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}

// Get retrieves the preference for a profile key.
func (r *PreferenceRepository) Get(ctx context.Context, profileKey string) (*models.Preference, error) {
	if profileKey == "" {
		return nil, models.ErrEmptyProfileKey
	}

	query := `
		SELECT profile_key, input, created_at, updated_at
		FROM preferences
		WHERE profile_key = $1`

	var pref models.Preference
	var inputJSON []byte

	err := r.db.QueryRowContext(ctx, query, profileKey).Scan(
		&pref.ProfileKey,
		&inputJSON,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	if err := json.Unmarshal(inputJSON, &pref.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preference input: %w", err)
	}

	return &pref, nil
}

// Delete removes the preference for a profile key.
func (r *PreferenceRepository) Delete(ctx context.Context, profileKey string) error {
	if profileKey == "" {
		return models.ErrEmptyProfileKey
	}

	affected, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE profile_key = $1`, profileKey)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	if affected == 0 {
		return models.ErrPreferenceNotFound
	}

	return nil
}

// List returns all stored preferences ordered by profile key.
func (r *PreferenceRepository) List(ctx context.Context) ([]*models.Preference, error) {
	query := `
		SELECT profile_key, input, created_at, updated_at
		FROM preferences
		ORDER BY profile_key`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	prefs := make([]*models.Preference, 0)
	for rows.Next() {
		var pref models.Preference
		var inputJSON []byte

		if err := rows.Scan(&pref.ProfileKey, &inputJSON, &pref.CreatedAt, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		if err := json.Unmarshal(inputJSON, &pref.Input); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preference input: %w", err)
		}

		prefs = append(prefs, &pref)
	}

	return prefs, rows.Err()
}
