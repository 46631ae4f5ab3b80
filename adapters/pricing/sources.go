// Package pricing - Built-in and file-backed schedule sources
package pricing

import (
	"context"
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	corepricing "smartmedia-cost/core/pricing"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
)

// ProviderAWSETS names the built-in Elastic-Transcoder-style rate table
const ProviderAWSETS = "awsets"

// regionRates is one region's published per-minute rates
type regionRates struct {
	TranscodeHD   string
	TranscodeSD   string
	TranscodeAud  string
	Detection     string // same rate for all four analysis features
	Transcription string
}

// Published per-minute rates by region. Held as strings so the decimal
// conversion is exact.
var regionTable = map[string]regionRates{
	"us-east-1":      {TranscodeHD: "0.034", TranscodeSD: "0.017", TranscodeAud: "0.00522", Detection: "0.01", Transcription: "0.024"},
	"us-west-2":      {TranscodeHD: "0.034", TranscodeSD: "0.017", TranscodeAud: "0.00522", Detection: "0.01", Transcription: "0.024"},
	"eu-west-1":      {TranscodeHD: "0.036", TranscodeSD: "0.018", TranscodeAud: "0.00561", Detection: "0.011", Transcription: "0.0258"},
	"ap-southeast-2": {TranscodeHD: "0.042", TranscodeSD: "0.021", TranscodeAud: "0.00653", Detection: "0.0125", Transcription: "0.0276"},
	"ap-northeast-1": {TranscodeHD: "0.042", TranscodeSD: "0.021", TranscodeAud: "0.00653", Detection: "0.013", Transcription: "0.0285"},
}

// TableSource serves schedules from the built-in region rate table
type TableSource struct{}

// NewTableSource creates a table source
func NewTableSource() *TableSource {
	return &TableSource{}
}

// FetchPricing returns the schedule for a region from the built-in table
func (s *TableSource) FetchPricing(ctx context.Context, region string) (*corepricing.Schedule, error) {
	rates, ok := regionTable[region]
	if !ok {
		return nil, errors.NotFound("pricing region", region)
	}
	return buildSchedule(region, rates)
}

// SupportedRegions returns the regions the table covers
func (s *TableSource) SupportedRegions() []string {
	regions := make([]string, 0, len(regionTable))
	for region := range regionTable {
		regions = append(regions, region)
	}
	return regions
}

func buildSchedule(region string, rates regionRates) (*corepricing.Schedule, error) {
	parse := func(v string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, errors.Pricing("invalid rate in pricing table", err).
				WithContext("region", region).
				WithContext("rate", v)
		}
		return d, nil
	}

	hd, err := parse(rates.TranscodeHD)
	if err != nil {
		return nil, err
	}
	sd, err := parse(rates.TranscodeSD)
	if err != nil {
		return nil, err
	}
	audio, err := parse(rates.TranscodeAud)
	if err != nil {
		return nil, err
	}
	detection, err := parse(rates.Detection)
	if err != nil {
		return nil, err
	}
	transcription, err := parse(rates.Transcription)
	if err != nil {
		return nil, err
	}

	transcode := map[types.Tier]decimal.Decimal{
		types.TierHD:    hd,
		types.TierSD:    sd,
		types.TierAudio: audio,
	}
	features := map[corepricing.Feature]decimal.Decimal{}
	for _, feature := range corepricing.Features {
		features[feature] = detection
	}
	return corepricing.NewSchedule(region, transcode, features, transcription), nil
}

// scheduleDoc is the JSON document shape for file-backed schedules
type scheduleDoc struct {
	Transcode     map[string]string `json:"transcode"`
	Detection     map[string]string `json:"detection"`
	Transcription string            `json:"transcription"`
}

// FileSource reads per-region schedule documents from a directory of
// <region>.json files. Useful for pinned or air-gapped pricing.
type FileSource struct {
	dir string
}

// NewFileSource creates a file source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// FetchPricing loads <dir>/<region>.json into a schedule
func (s *FileSource) FetchPricing(ctx context.Context, region string) (*corepricing.Schedule, error) {
	data, err := os.ReadFile(s.dir + "/" + region + ".json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("pricing file for region", region)
		}
		return nil, errors.Pricing("reading pricing file", err)
	}

	var doc scheduleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Pricing("parsing pricing file", err).
			WithContext("region", region)
	}

	transcode := make(map[types.Tier]decimal.Decimal, len(doc.Transcode))
	for tier, v := range doc.Transcode {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.Pricing("invalid transcode rate", err).
				WithContext("tier", tier)
		}
		transcode[types.Tier(tier)] = d
	}

	detection := make(map[corepricing.Feature]decimal.Decimal, len(doc.Detection))
	for feature, v := range doc.Detection {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.Pricing("invalid detection rate", err).
				WithContext("feature", feature)
		}
		detection[corepricing.Feature(feature)] = d
	}

	transcription := decimal.Zero
	if doc.Transcription != "" {
		transcription, err = decimal.NewFromString(doc.Transcription)
		if err != nil {
			return nil, errors.Pricing("invalid transcription rate", err)
		}
	}

	return corepricing.NewSchedule(region, transcode, detection, transcription), nil
}
