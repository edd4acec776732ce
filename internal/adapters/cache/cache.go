// Package cache keeps recently computed predictions so repeated requests
// for the same match do not re-run the prediction engine. Entries expire
// after a TTL because a prediction older than a few hours no longer
// reflects team news.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
	"github.com/abeldarick/ASDM-PRONO/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultTTL             = 6 * time.Hour
	defaultCleanupInterval = 30 * time.Minute
)

// PredictionCache stores predictions keyed by match ID.
type PredictionCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// Option applies a configuration option to the PredictionCache.
type Option func(*PredictionCache)

// WithTTL sets how long a cached prediction stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(c *PredictionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New creates a prediction cache with the default 6-hour TTL.
func New(opts ...Option) *PredictionCache {
	c := &PredictionCache{ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	c.store = gocache.New(c.ttl, defaultCleanupInterval)
	return c
}

// Get returns the cached prediction for a match, if still valid.
func (c *PredictionCache) Get(_ context.Context, matchID string) (model.Prediction, bool) {
	v, ok := c.store.Get(matchID)
	if !ok {
		metrics.RecordCacheMiss()
		return model.Prediction{}, false
	}
	p, ok := v.(model.Prediction)
	if !ok {
		metrics.RecordCacheMiss()
		return model.Prediction{}, false
	}
	metrics.RecordCacheHit()
	return p, true
}

// Put caches a fresh prediction under the match ID.
func (c *PredictionCache) Put(_ context.Context, matchID string, p model.Prediction) {
	c.store.Set(matchID, p, c.ttl)
}

// Len returns the number of live entries.
func (c *PredictionCache) Len() int {
	return c.store.ItemCount()
}
