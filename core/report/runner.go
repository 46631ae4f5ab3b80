// Package report - Report run orchestration
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartmedia-cost/core/cost"
	"smartmedia-cost/core/pricing"
	"smartmedia-cost/core/preset"
	"smartmedia-cost/core/types"
	"smartmedia-cost/internal/errors"
	"smartmedia-cost/internal/logging"
)

// RunnerConfig is the configuration surface one report run consumes
type RunnerConfig struct {
	// APIConfigured gates the run: when credentials are absent the run
	// is a logged no-op, not an error
	APIConfigured bool

	// Region is the pricing region code
	Region string

	// Settings are the aggregation parameters
	Settings Settings
}

// Result summarizes one report run
type Result struct {
	// RunID identifies the run in logs
	RunID string

	// Skipped is true when the credential gate short-circuited the run
	Skipped bool

	// Rows is the number of overview rows written
	Rows int

	// Estimate is the forward-looking cost estimate
	Estimate types.Estimate

	// Counters are the published usage counters
	Counters types.UsageCounters

	// Elapsed is how long the run took
	Elapsed time.Duration
}

// Runner executes one report run end to end: fetch pricing once, list
// presets, build the overview, compute the estimate, persist everything.
// Runs are sequential; overlap avoidance is the scheduler's job.
type Runner struct {
	cfg     RunnerConfig
	pricing pricing.Source
	presets preset.Source
	media   MediaStore
	reports ReportStore

	// now is replaceable for tests
	now func() time.Time
}

// NewRunner wires a runner from its collaborators
func NewRunner(cfg RunnerConfig, pricingSource pricing.Source, presetSource preset.Source, media MediaStore, reports ReportStore) *Runner {
	return &Runner{
		cfg:     cfg,
		pricing: pricingSource,
		presets: presetSource,
		media:   media,
		reports: reports,
		now:     time.Now,
	}
}

// Run executes one report run. Pricing or preset fetch failures,
// data-integrity violations and storage write failures are hard
// failures: nothing partial is committed and the error is surfaced so
// the scheduler can retry the whole job.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := r.now()
	result := &Result{RunID: uuid.New().String()}
	log := logging.With(zap.String("run_id", result.RunID))

	if !r.cfg.APIConfigured {
		log.Info("api credentials not configured, skipping report run")
		result.Skipped = true
		return result, nil
	}

	// The schedule is fetched at most once per run and discarded with
	// the cache when the run ends.
	cache := pricing.NewCache(r.pricing)
	schedule, err := cache.Get(ctx, r.cfg.Region)
	if err != nil {
		return nil, errors.Pricing("fetching pricing schedule", err).
			WithContext("region", r.cfg.Region)
	}

	catalog, err := r.presets.ListPresets(ctx, nil)
	if err != nil {
		return nil, errors.Pricing("listing transcoding presets", err)
	}

	calc := cost.NewCalculator(schedule, catalog, r.cfg.Settings.HDMinHeight)
	agg := NewAggregator(calc, catalog, r.cfg.Settings)

	records, err := r.media.OverviewRecords(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := agg.BuildOverview(records)
	if err != nil {
		return nil, err
	}
	if err := r.reports.ReplaceOverview(ctx, rows); err != nil {
		return nil, err
	}
	result.Rows = len(rows)
	log.Info("overview table replaced", zap.Int("rows", len(rows)))

	estimate, err := r.forwardEstimate(ctx, agg)
	if err != nil {
		return nil, err
	}
	result.Estimate = estimate
	if err := r.reports.UpsertScalar(ctx, types.KeyTotalCost, estimate.ScalarValue()); err != nil {
		return nil, err
	}

	counters, err := r.media.Counters(ctx)
	if err != nil {
		return nil, err
	}
	result.Counters = counters
	scalars := map[string]string{
		types.KeyUniqueMedia:       strconv.FormatInt(counters.UniqueMedia, 10),
		types.KeyMetadataProcessed: strconv.FormatInt(counters.MetadataProcessed, 10),
		types.KeyConverted:         strconv.FormatInt(counters.Converted, 10),
		types.KeyLastRun:           r.now().UTC().Format(time.RFC3339),
	}
	for key, value := range scalars {
		if err := r.reports.UpsertScalar(ctx, key, value); err != nil {
			return nil, err
		}
	}

	result.Elapsed = r.now().Sub(started)
	log.Info("report run finished",
		zap.Duration("elapsed", result.Elapsed),
		zap.String("total_cost", estimate.ScalarValue()))
	return result, nil
}

// forwardEstimate queries unconverted media only when proactive
// conversion is enabled; otherwise the estimate is zero immediately.
func (r *Runner) forwardEstimate(ctx context.Context, agg *Aggregator) (types.Estimate, error) {
	if !r.cfg.Settings.ProactiveConversion {
		return types.Estimate{Calculable: true}, nil
	}

	cutoff := r.now().Add(-time.Duration(r.cfg.Settings.Lookback) * time.Second)
	unconverted, err := r.media.UnconvertedMedia(ctx, cutoff)
	if err != nil {
		return types.Estimate{}, err
	}
	return agg.ForwardEstimate(unconverted)
}
