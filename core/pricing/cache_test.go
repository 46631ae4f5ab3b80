package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// countingSource counts fetches so the run-scoped single-fetch
// invariant can be asserted.
type countingSource struct {
	fetches int
	fail    bool
}

func (s *countingSource) FetchPricing(ctx context.Context, region string) (*Schedule, error) {
	s.fetches++
	if s.fail {
		return nil, errors.New(errors.TypeNetwork, "pricing endpoint unavailable")
	}
	return NewSchedule(region, nil, nil, decimal.Zero), nil
}

func TestCacheFetchesAtMostOnce(t *testing.T) {
	source := &countingSource{}
	cache := NewCache(source)

	for i := 0; i < 5; i++ {
		schedule, err := cache.Get(context.Background(), "us-east-1")
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", schedule.Region())
	}

	assert.Equal(t, 1, source.fetches)
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	source := &countingSource{fail: true}
	cache := NewCache(source)

	_, err := cache.Get(context.Background(), "us-east-1")
	require.Error(t, err)

	source.fail = false
	schedule, err := cache.Get(context.Background(), "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", schedule.Region())
	assert.Equal(t, 2, source.fetches)
}

func TestScheduleCopiesRateTables(t *testing.T) {
	transcode := map[types.Tier]decimal.Decimal{
		types.TierHD: decimal.RequireFromString("0.034"),
	}
	schedule := NewSchedule("us-east-1", transcode, nil, decimal.Zero)

	// Mutating the input after construction must not leak in.
	transcode[types.TierHD] = decimal.RequireFromString("99")

	assert.True(t, schedule.TranscodeRate(types.TierHD).Equal(decimal.RequireFromString("0.034")))
}

func TestScheduleMissingTierRatesZero(t *testing.T) {
	schedule := NewSchedule("us-east-1", nil, nil, decimal.Zero)
	assert.True(t, schedule.TranscodeRate(types.TierHD).IsZero())
	assert.True(t, schedule.DetectionRate(FeatureFaceDetection).IsZero())
}
