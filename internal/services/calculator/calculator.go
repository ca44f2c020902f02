// Package calculator orchestrates the cost calculation flow: input
// resolution, result caching, the engine run and history persistence.
package calculator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"car-cost-engine/internal/engine"
	"car-cost-engine/internal/models"
	"car-cost-engine/internal/services/cache"
	"car-cost-engine/internal/services/database"
	"car-cost-engine/internal/utils"
)

// Service runs calculations around the pure engine. The engine itself never
// fails; errors out of this service come from the storage collaborators.
type Service struct {
	engine  *engine.Engine
	cache   cache.ResultCache
	prefs   *database.PreferenceRepository
	history *database.CalculationRepository
}

// NewService creates a calculator service. A nil db disables preferences and
// history (the Lambda calculate path runs engine-only); a nil cache disables
// result caching.
func NewService(db *database.DB, eng *engine.Engine, resultCache cache.ResultCache) *Service {
	if eng == nil {
		eng = engine.New(nil)
	}

	s := &Service{
		engine: eng,
		cache:  resultCache,
	}
	if db != nil {
		s.prefs = database.NewPreferenceRepository(db)
		s.history = database.NewCalculationRepository(db)
	}
	return s
}

// Engine exposes the underlying engine.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Calculate resolves defaults on the input, returns the breakdown and
// appends a history record. History persistence is best effort: a storage
// failure is logged, not surfaced, because the breakdown itself is valid.
func (s *Service) Calculate(ctx context.Context, profileKey string, in models.CalculatorInput) (*models.CostBreakdown, error) {
	in.ApplyDefaults()

	key := cache.Key(&in)
	breakdown, hit := s.cachedBreakdown(ctx, key)
	if !hit {
		breakdown = s.engine.CalculateCosts(&in)
		s.storeBreakdown(ctx, key, breakdown)
	}

	if s.history != nil {
		rec := &models.CalculationRecord{
			ProfileKey: profileKey,
			Input:      in,
			Breakdown:  *breakdown,
		}
		if err := s.history.Insert(ctx, rec); err != nil {
			utils.GetLogger().Warn("Failed to record calculation history",
				zap.String("profile_key", profileKey),
				zap.Error(err),
			)
		}
	}

	return breakdown, nil
}

// CalculateFromListing overlays a partial vehicle listing on the stored
// preference for the profile (or on a zero base when none is stored) and
// calculates the result.
func (s *Service) CalculateFromListing(ctx context.Context, profileKey string, listing *models.VehicleListing) (*models.CostBreakdown, error) {
	if listing == nil || listing.IsEmpty() {
		return nil, models.ErrEmptyListing
	}

	base := models.CalculatorInput{}
	if s.prefs != nil && profileKey != "" {
		pref, err := s.prefs.Get(ctx, profileKey)
		switch {
		case err == nil:
			base = pref.Input
		case errors.Is(err, models.ErrPreferenceNotFound):
			// No stored preference, the listing stands on defaults.
		default:
			return nil, fmt.Errorf("failed to load preference: %w", err)
		}
	}

	return s.Calculate(ctx, profileKey, listing.Apply(base))
}

// History returns the most recent calculations for a profile key.
func (s *Service) History(ctx context.Context, profileKey string, limit int) ([]*models.CalculationRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListByProfile(ctx, profileKey, limit)
}

// cachedBreakdown consults the result cache when one is configured.
func (s *Service) cachedBreakdown(ctx context.Context, key string) (*models.CostBreakdown, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

// storeBreakdown writes through to the result cache, best effort.
func (s *Service) storeBreakdown(ctx context.Context, key string, breakdown *models.CostBreakdown) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, breakdown); err != nil {
		utils.GetLogger().Warn("Failed to cache breakdown", zap.Error(err))
	}
}
