// Package pricing - Run-scoped schedule cache
package pricing

import (
	"context"
	"sync"
)

// Cache wraps a Source and fetches the schedule at most once. It is
// scoped to a single report run: create one per run and discard it when
// the run ends, so a later run always observes current prices.
type Cache struct {
	source Source

	mu       sync.Mutex
	schedule *Schedule
	region   string
}

// NewCache creates a run-scoped cache around a source
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get returns the schedule for a region, fetching it on first use only.
// The region is fixed by the first call; a run never spans regions.
func (c *Cache) Get(ctx context.Context, region string) (*Schedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.schedule != nil && c.region == region {
		return c.schedule, nil
	}

	schedule, err := c.source.FetchPricing(ctx, region)
	if err != nil {
		return nil, err
	}

	c.schedule = schedule
	c.region = region
	return schedule, nil
}
