// Package cache provides a read-through cache of period-of-record daily
// series keyed by station triplet. Concurrent requests for the same station
// share a single upstream fetch (single-flight); a completed fetch is
// replaced only when a caller explicitly invalidates the key, matching the
// dashboard's replace-on-reselect freshness policy.
package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/metrics"
)

// FetchFunc loads a station's period of record from upstream.
type FetchFunc func(ctx context.Context, stationID string) ([]analytics.DailyObservation, error)

// SeriesCache is an explicit, injectable cache owned by the caller; there is
// deliberately no package-level instance.
type SeriesCache struct {
	fetch   FetchFunc
	metrics *metrics.Collector

	mu      sync.RWMutex
	entries map[string][]analytics.DailyObservation

	group singleflight.Group
}

// New creates a SeriesCache around a fetch function. metrics may be nil.
func New(fetch FetchFunc, m *metrics.Collector) *SeriesCache {
	return &SeriesCache{
		fetch:   fetch,
		metrics: m,
		entries: make(map[string][]analytics.DailyObservation),
	}
}

// Get returns the cached series for a station, fetching it on first use.
// Concurrent callers for the same station wait on one fetch. A failed fetch
// caches nothing, so the next call retries.
func (c *SeriesCache) Get(ctx context.Context, stationID string) ([]analytics.DailyObservation, error) {
	c.mu.RLock()
	series, ok := c.entries[stationID]
	c.mu.RUnlock()
	if ok {
		if c.metrics != nil {
			c.metrics.CacheHitsTotal.Inc()
		}
		return series, nil
	}

	if c.metrics != nil {
		c.metrics.CacheMissTotal.Inc()
	}

	v, err, _ := c.group.Do(stationID, func() (interface{}, error) {
		// Re-check: another flight may have stored the entry between the
		// read above and this call.
		c.mu.RLock()
		cached, stored := c.entries[stationID]
		c.mu.RUnlock()
		if stored {
			return cached, nil
		}

		fetched, fetchErr := c.fetch(ctx, stationID)
		if fetchErr != nil {
			return nil, fetchErr
		}

		c.mu.Lock()
		c.entries[stationID] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]analytics.DailyObservation), nil
}

// Invalidate drops a station's cached series so the next Get refetches.
func (c *SeriesCache) Invalidate(stationID string) {
	c.mu.Lock()
	delete(c.entries, stationID)
	c.mu.Unlock()
}

// Len reports the number of cached stations.
func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
