package calculator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-cost-engine/internal/models"
	"car-cost-engine/internal/services/cache"
)

func TestCalculate_UsesCache(t *testing.T) {
	ctx := context.Background()
	memCache := cache.NewMemoryCache()
	svc := NewService(nil, nil, memCache)

	in := models.CalculatorInput{
		PurchasePrice:    300000,
		FuelConsumption:  0.7,
		PrimaryFuelPrice: 18.5,
		AnnualMileage:    1500,
		OwnershipYears:   5,
	}

	first, err := svc.Calculate(ctx, "volvo-v60", in)
	require.NoError(t, err)
	assert.Equal(t, 1, memCache.Len())

	second, err := svc.Calculate(ctx, "volvo-v60", in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, memCache.Len(), "identical input reuses the cached entry")

	in.AnnualMileage = 2000
	_, err = svc.Calculate(ctx, "volvo-v60", in)
	require.NoError(t, err)
	assert.Equal(t, 2, memCache.Len())
}

func TestCalculate_AppliesDefaults(t *testing.T) {
	svc := NewService(nil, nil, nil)

	// Sparse input still selects table rows via defaults.
	breakdown, err := svc.Calculate(context.Background(), "", models.CalculatorInput{
		AnnualMileage: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), breakdown.Maintenance, "normal/normal maintenance row")
	assert.Zero(t, breakdown.Financing, "defaults to cash")
}

func TestCalculateFromListing_EmptyListing(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.CalculateFromListing(context.Background(), "key", &models.VehicleListing{})
	assert.ErrorIs(t, err, models.ErrEmptyListing)

	_, err = svc.CalculateFromListing(context.Background(), "key", nil)
	assert.ErrorIs(t, err, models.ErrEmptyListing)
}

func TestCalculateFromListing_OverlaysListing(t *testing.T) {
	svc := NewService(nil, nil, nil)

	price := 250000.0
	consumption := 0.6
	fuel := "bensin"
	mileage := 1200.0

	breakdown, err := svc.CalculateFromListing(context.Background(), "", &models.VehicleListing{
		Price:           &price,
		FuelConsumption: &consumption,
		FuelType:        &fuel,
		AnnualMileage:   &mileage,
	})
	require.NoError(t, err)

	// Fuel price is zero (no preference base), so fuel cost is zero, but
	// maintenance scales from the listing mileage.
	assert.Zero(t, breakdown.Fuel)
	assert.Equal(t, int64(6400), breakdown.Maintenance) // 8000 * 1200/1500
}

func TestHistory_WithoutStore(t *testing.T) {
	svc := NewService(nil, nil, nil)

	records, err := svc.History(context.Background(), "key", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
