// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cropwise/internal/knowledge"
	"github.com/tomtom215/cropwise/internal/metrics"
	"github.com/tomtom215/cropwise/internal/models"
	"github.com/tomtom215/cropwise/internal/recommend/storage"
	"github.com/tomtom215/cropwise/internal/season"
)

// NativeMetrics is a snapshot of native-crop cache counters.
type NativeMetrics struct {
	Hits         int64 `json:"hits"`
	Misses       int64 `json:"misses"`
	Computations int64 `json:"computations"`
	Shared       int64 `json:"shared"`
}

// NativeInferer ranks the crops native to a district and memoizes the
// ranking per (state, district, season). Concurrent misses for one key are
// computed once and published once.
type NativeInferer struct {
	config    *Config
	kb        *knowledge.Base
	districts DistrictLookup
	yields    YieldSource
	store     storage.NativeStore
	logger    zerolog.Logger
	now       func() time.Time

	group singleflight.Group

	// generation is bumped by every invalidation. A flight publishes only
	// if no invalidation happened since it started; publishMu makes the
	// check and the Put atomic with respect to the bump.
	publishMu  sync.RWMutex
	generation uint64

	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
	shared       atomic.Int64
}

// NewNativeInferer creates an inferer. A nil store selects an in-memory
// store; nil districts or yields contribute no signal.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNativeInferer(
	cfg *Config,
	kb *knowledge.Base,
	districts DistrictLookup,
	yields YieldSource,
	store storage.NativeStore,
	logger zerolog.Logger,
) *NativeInferer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if kb == nil {
		kb = knowledge.Default()
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &NativeInferer{
		config:    cfg,
		kb:        kb,
		districts: districts,
		yields:    yields,
		store:     store,
		logger:    logger.With().Str("component", "native").Logger(),
		now:       time.Now,
	}
}

// NativeKey builds the cache key. An empty season maps to "all".
func NativeKey(state, district string, s models.Season) models.NativeCacheKey {
	seasonPart := string(s)
	if seasonPart == "" {
		seasonPart = models.NativeCacheKeyAllSeasons
	}
	return models.NativeCacheKey{State: state, District: district, Season: seasonPart}
}

// NativeCrops returns the district's crops ordered by nativeness. When s is
// empty the current season's knowledge is used and the result is cached
// under the "all" key. Store failures are logged and never returned; the
// list is recomputed instead.
func (n *NativeInferer) NativeCrops(ctx context.Context, state, district string, s models.Season) []string {
	key := NativeKey(state, district, s)

	if crops, ok := n.load(ctx, key); ok {
		n.hits.Add(1)
		metrics.RecordNativeCache("hit")
		return crops
	}
	n.misses.Add(1)
	metrics.RecordNativeCache("miss")

	// The winner's context must not cancel the shared computation.
	flightCtx := context.WithoutCancel(ctx)
	v, _, shared := n.group.Do(key.String(), func() (any, error) {
		// A flight that finished between our load and Do may have published.
		if crops, ok := n.load(flightCtx, key); ok {
			return crops, nil
		}

		gen := n.currentGeneration()
		start := time.Now()
		knowledgeSeason := season.Resolve(s, n.now())
		crops := n.Rank(state, district, knowledgeSeason)
		n.computations.Add(1)
		metrics.RecordNativeInference(time.Since(start))

		n.publish(flightCtx, key, crops, gen)
		return crops, nil
	})
	if shared {
		n.shared.Add(1)
	}

	crops, _ := v.([]string)
	out := make([]string, len(crops))
	copy(out, crops)
	return out
}

func (n *NativeInferer) currentGeneration() uint64 {
	n.publishMu.RLock()
	defer n.publishMu.RUnlock()
	return n.generation
}

// publish stores crops unless the cache was invalidated after the
// computation started at generation gen.
func (n *NativeInferer) publish(ctx context.Context, key models.NativeCacheKey, crops []string, gen uint64) {
	n.publishMu.RLock()
	defer n.publishMu.RUnlock()

	if n.generation != gen {
		n.logger.Debug().Str("key", key.String()).Msg("cache invalidated during computation, not publishing")
		return
	}
	if err := n.store.Put(ctx, key, crops); err != nil {
		n.logger.Warn().Err(err).
			Str("key", key.String()).
			Str("store", n.store.Name()).
			Msg("failed to publish native crops")
	}
}

func (n *NativeInferer) bumpGeneration() {
	n.publishMu.Lock()
	n.generation++
	n.publishMu.Unlock()
}

func (n *NativeInferer) load(ctx context.Context, key models.NativeCacheKey) ([]string, bool) {
	crops, err := n.store.Get(ctx, key)
	if err == nil {
		return crops, true
	}
	if !errors.Is(err, storage.ErrNotFound) {
		n.logger.Warn().Err(err).
			Str("key", key.String()).
			Str("store", n.store.Name()).
			Msg("native store read failed, recomputing")
	}
	return nil, false
}

type nativeScore struct {
	crop  string
	score float64
}

// Rank scores the union of historical, state yield and seasonal crops and
// returns them by descending score, ties broken by crop identifier. Scores
// are additive and not capped.
func (n *NativeInferer) Rank(state, district string, s models.Season) []string {
	var record models.DistrictRecord
	if n.districts != nil {
		record, _ = n.districts.Lookup(state, district)
	}
	var stats map[string]models.YieldStats
	if n.yields != nil {
		stats = n.yields.StateStats(state)
	}

	candidates := make(map[string]struct{})
	for _, c := range record.HistoricalCrops {
		candidates[c] = struct{}{}
	}
	for c := range stats {
		candidates[c] = struct{}{}
	}
	if entry, ok := n.kb.Entry(s); ok {
		for _, c := range entry.Ideal {
			candidates[c] = struct{}{}
		}
		for _, c := range entry.Suitable {
			candidates[c] = struct{}{}
		}
	}

	nc := &n.config.Native
	scored := make([]nativeScore, 0, len(candidates))
	for crop := range candidates {
		score := 0.0
		if record.HasHistoricalCrop(crop) {
			score += nc.HistoricalScore
		}
		if ys, ok := stats[crop]; ok {
			score += nc.YieldScore * math.Max(0, math.Min(ys.YieldEfficiency, 1))
		}
		if n.kb.IsSeasonal(s, crop) {
			score += nc.SeasonalScore
		}
		scored = append(scored, nativeScore{crop: crop, score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].crop < scored[j].crop
	})

	crops := make([]string, len(scored))
	for i, ns := range scored {
		crops[i] = ns.crop
	}
	return crops
}

// Invalidate drops one memoized list so the next request recomputes it.
func (n *NativeInferer) Invalidate(ctx context.Context, key models.NativeCacheKey) error {
	n.bumpGeneration()
	if err := n.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	n.logger.Info().Str("key", key.String()).Msg("native crops invalidated")
	return nil
}

// InvalidateAll drops every memoized list.
func (n *NativeInferer) InvalidateAll(ctx context.Context) error {
	n.bumpGeneration()
	if err := n.store.Clear(ctx); err != nil {
		return fmt.Errorf("invalidate all: %w", err)
	}
	n.logger.Info().Str("store", n.store.Name()).Msg("native crop cache cleared")
	return nil
}

// StoreName returns the backing store's name.
func (n *NativeInferer) StoreName() string {
	return n.store.Name()
}

// GetMetrics returns a snapshot of the cache counters.
func (n *NativeInferer) GetMetrics() NativeMetrics {
	return NativeMetrics{
		Hits:         n.hits.Load(),
		Misses:       n.misses.Load(),
		Computations: n.computations.Load(),
		Shared:       n.shared.Load(),
	}
}
