package pricing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corepricing "smartmedia-cost/core/pricing"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

func TestTableSourceKnownRegion(t *testing.T) {
	source := NewTableSource()

	schedule, err := source.FetchPricing(context.Background(), "us-east-1")
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", schedule.Region())
	assert.True(t, schedule.TranscodeRate(types.TierHD).Equal(decimal.RequireFromString("0.034")))
	assert.True(t, schedule.TranscodeRate(types.TierSD).Equal(decimal.RequireFromString("0.017")))
	assert.True(t, schedule.TranscodeRate(types.TierAudio).Equal(decimal.RequireFromString("0.00522")))
	assert.True(t, schedule.TranscriptionRate().Equal(decimal.RequireFromString("0.024")))

	for _, feature := range corepricing.Features {
		assert.True(t, schedule.DetectionRate(feature).Equal(decimal.RequireFromString("0.01")),
			"feature %s", feature)
	}
}

func TestTableSourceUnknownRegion(t *testing.T) {
	source := NewTableSource()

	_, err := source.FetchPricing(context.Background(), "mars-north-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestTableSourceSupportedRegions(t *testing.T) {
	regions := NewTableSource().SupportedRegions()
	assert.Contains(t, regions, "us-east-1")
	assert.Contains(t, regions, "ap-southeast-2")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"transcode": {"hd": "0.05", "sd": "0.025", "audio": "0.006"},
		"detection": {"face_detection": "0.02", "label_detection": "0.015"},
		"transcription": "0.03"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eu-central-1.json"), []byte(doc), 0644))

	source := NewFileSource(dir)
	schedule, err := source.FetchPricing(context.Background(), "eu-central-1")
	require.NoError(t, err)

	assert.True(t, schedule.TranscodeRate(types.TierHD).Equal(decimal.RequireFromString("0.05")))
	assert.True(t, schedule.DetectionRate(corepricing.FeatureLabelDetection).Equal(decimal.RequireFromString("0.015")))
	assert.True(t, schedule.DetectionRate(corepricing.FeaturePersonTracking).IsZero(), "unlisted features rate as zero")
	assert.True(t, schedule.TranscriptionRate().Equal(decimal.RequireFromString("0.03")))
}

func TestFileSourceMissingRegion(t *testing.T) {
	source := NewFileSource(t.TempDir())

	_, err := source.FetchPricing(context.Background(), "us-east-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestFileSourceMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "us-east-1.json"), []byte("{nope"), 0644))

	_, err := NewFileSource(dir).FetchPricing(context.Background(), "us-east-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypePricing))
}

func TestRegistry(t *testing.T) {
	registry := Default()

	source, err := registry.Get(ProviderAWSETS)
	require.NoError(t, err)
	assert.NotNil(t, source)

	_, err = registry.Get("nope")
	require.Error(t, err)
	assert.Contains(t, registry.List(), ProviderAWSETS)
}
