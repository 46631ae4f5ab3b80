package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmedia-cost/core/preset"
	"smartmedia-cost/core/pricing"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// fakePricing implements pricing.Source and counts fetches
type fakePricing struct {
	fetches int
	fail    bool
}

func (f *fakePricing) FetchPricing(ctx context.Context, region string) (*pricing.Schedule, error) {
	f.fetches++
	if f.fail {
		return nil, errors.New(errors.TypeNetwork, "pricing temporarily unavailable")
	}
	return testSchedule(), nil
}

// fakePresets implements preset.Source
type fakePresets struct {
	catalog preset.Catalog
}

func (f *fakePresets) ListPresets(ctx context.Context, ids []string) (preset.Catalog, error) {
	if len(ids) == 0 {
		return f.catalog, nil
	}
	return f.catalog.Filter(ids), nil
}

// fakeMediaStore implements MediaStore from fixed slices
type fakeMediaStore struct {
	records     []OverviewRecord
	unconverted []types.MediaAttributes
	counters    types.UsageCounters

	unconvertedCalls int
	lastCutoff       time.Time
}

func (f *fakeMediaStore) OverviewRecords(ctx context.Context) ([]OverviewRecord, error) {
	return f.records, nil
}

func (f *fakeMediaStore) UnconvertedMedia(ctx context.Context, since time.Time) ([]types.MediaAttributes, error) {
	f.unconvertedCalls++
	f.lastCutoff = since
	return f.unconverted, nil
}

func (f *fakeMediaStore) Counters(ctx context.Context) (types.UsageCounters, error) {
	return f.counters, nil
}

// fakeReportStore records writes
type fakeReportStore struct {
	rows    []types.OverviewRow
	scalars map[string]string

	replaceCalls int
	failReplace  bool
}

func (f *fakeReportStore) ReplaceOverview(ctx context.Context, rows []types.OverviewRow) error {
	if f.failReplace {
		return errors.Storage("disk on fire", nil)
	}
	f.replaceCalls++
	f.rows = rows
	return nil
}

func (f *fakeReportStore) UpsertScalar(ctx context.Context, key, value string) error {
	if f.scalars == nil {
		f.scalars = make(map[string]string)
	}
	f.scalars[key] = value
	return nil
}

func testRunnerConfig() RunnerConfig {
	return RunnerConfig{
		APIConfigured: true,
		Region:        "us-east-1",
		Settings:      testSettings(),
	}
}

func TestRunnerSkipsWithoutCredentials(t *testing.T) {
	cfg := testRunnerConfig()
	cfg.APIConfigured = false

	pricingSource := &fakePricing{}
	reports := &fakeReportStore{}
	runner := NewRunner(cfg, pricingSource, &fakePresets{}, &fakeMediaStore{}, reports)

	result, err := runner.Run(context.Background())
	require.NoError(t, err, "missing credentials is a no-op, not an error")
	assert.True(t, result.Skipped)
	assert.Zero(t, pricingSource.fetches, "nothing is fetched on a skipped run")
	assert.Zero(t, reports.replaceCalls, "nothing is written on a skipped run")
}

func TestRunnerFullRun(t *testing.T) {
	media := &fakeMediaStore{
		records:     []OverviewRecord{videoRecord("aaa")},
		unconverted: unconvertedMedia(),
		counters:    types.UsageCounters{UniqueMedia: 12, MetadataProcessed: 10, Converted: 4},
	}
	reports := &fakeReportStore{}
	pricingSource := &fakePricing{}

	runner := NewRunner(testRunnerConfig(), pricingSource, &fakePresets{catalog: testCatalog()}, media, reports)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	assert.Equal(t, 1, result.Rows)
	require.Len(t, reports.rows, 1)
	assert.Equal(t, "aaa", reports.rows[0].ContentHash)

	assert.Equal(t, 1, pricingSource.fetches, "pricing is fetched exactly once per run")
	assert.Equal(t, 1, media.unconvertedCalls)

	assert.Equal(t, "12", reports.scalars[types.KeyUniqueMedia])
	assert.Equal(t, "10", reports.scalars[types.KeyMetadataProcessed])
	assert.Equal(t, "4", reports.scalars[types.KeyConverted])
	assert.Equal(t, result.Estimate.ScalarValue(), reports.scalars[types.KeyTotalCost])
	assert.NotEmpty(t, reports.scalars[types.KeyLastRun])
}

func TestRunnerAppliesLookbackCutoff(t *testing.T) {
	media := &fakeMediaStore{}
	runner := NewRunner(testRunnerConfig(), &fakePricing{}, &fakePresets{catalog: testCatalog()}, media, &fakeReportStore{})

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return now }

	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	want := now.Add(-7 * 24 * time.Hour)
	assert.Equal(t, want, media.lastCutoff)
}

func TestRunnerSkipsUnconvertedQueryWhenProactiveDisabled(t *testing.T) {
	cfg := testRunnerConfig()
	cfg.Settings.ProactiveConversion = false

	media := &fakeMediaStore{}
	reports := &fakeReportStore{}
	runner := NewRunner(cfg, &fakePricing{}, &fakePresets{catalog: testCatalog()}, media, reports)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, media.unconvertedCalls)
	assert.True(t, result.Estimate.Calculable)
	assert.Equal(t, "0", reports.scalars[types.KeyTotalCost])
}

func TestRunnerNoPresetsWritesNotCalculable(t *testing.T) {
	reports := &fakeReportStore{}
	runner := NewRunner(testRunnerConfig(), &fakePricing{}, &fakePresets{}, &fakeMediaStore{}, reports)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.NotCalculable, reports.scalars[types.KeyTotalCost])
}

func TestRunnerPropagatesPricingFailure(t *testing.T) {
	reports := &fakeReportStore{}
	runner := NewRunner(testRunnerConfig(), &fakePricing{fail: true}, &fakePresets{catalog: testCatalog()}, &fakeMediaStore{}, reports)

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypePricing))
	assert.Zero(t, reports.replaceCalls, "no partial report is written on pricing failure")
	assert.Empty(t, reports.scalars)
}

func TestRunnerPropagatesStorageFailure(t *testing.T) {
	media := &fakeMediaStore{records: []OverviewRecord{videoRecord("aaa")}}
	reports := &fakeReportStore{failReplace: true}
	runner := NewRunner(testRunnerConfig(), &fakePricing{}, &fakePresets{catalog: testCatalog()}, media, reports)

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, reports.scalars, "scalars are not written after a failed replace")
}

func TestRunnerZeroStreamRecordFailsRun(t *testing.T) {
	rec := videoRecord("bad")
	rec.Media.VideoStreams = 0
	rec.Media.AudioStreams = 0

	media := &fakeMediaStore{records: []OverviewRecord{rec}}
	reports := &fakeReportStore{}
	runner := NewRunner(testRunnerConfig(), &fakePricing{}, &fakePresets{catalog: testCatalog()}, media, reports)

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeData))
	assert.Zero(t, reports.replaceCalls)
}
