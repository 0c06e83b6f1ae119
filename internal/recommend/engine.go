// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package recommend ranks crops for a district and season.
//
// The Engine scores a candidate pool drawn from the seasonal knowledge base
// with additive bonuses for weather fit, regional affinity, district history
// and state yield performance. An optional ModelAdapter can be blended into
// the ranking. NativeInferer derives the crops native to a district and
// memoizes them in a storage.NativeStore.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropwise/internal/knowledge"
	"github.com/tomtom215/cropwise/internal/metrics"
	"github.com/tomtom215/cropwise/internal/models"
)

// DistrictLookup finds the reference record for a district.
type DistrictLookup interface {
	Lookup(state, district string) (models.DistrictRecord, bool)
}

// YieldSource returns per-crop yield statistics for a state. The map is
// empty when the state is unknown.
type YieldSource interface {
	StateStats(state string) map[string]models.YieldStats
}

// Request is one scoring request.
type Request struct {
	Season   models.Season
	Weather  models.WeatherSnapshot
	State    string
	District string
	K        int
}

// Response is the ranked output of the engine.
type Response struct {
	Recommendations []models.Recommendation
	Candidates      int
	ModelUsed       bool
	Latency         time.Duration
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	RequestCount    int64 `json:"request_count"`
	ModelCalls      int64 `json:"model_calls"`
	ModelErrors     int64 `json:"model_errors"`
	EmptyCandidates int64 `json:"empty_candidates"`
}

// Engine scores crops against the seasonal knowledge base.
// It is safe for concurrent use once configured.
type Engine struct {
	config *Config
	logger zerolog.Logger
	kb     *knowledge.Base

	districts DistrictLookup
	yields    YieldSource
	model     ModelAdapter

	requestCount    atomic.Int64
	modelCalls      atomic.Int64
	modelErrors     atomic.Int64
	emptyCandidates atomic.Int64
}

// NewEngine creates a new scoring engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, kb *knowledge.Base, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if kb == nil {
		kb = knowledge.Default()
	}

	return &Engine{
		config: cfg,
		kb:     kb,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDistrictLookup sets the district reference data.
func (e *Engine) SetDistrictLookup(d DistrictLookup) {
	e.districts = d
}

// SetYieldSource sets the state yield statistics.
func (e *Engine) SetYieldSource(y YieldSource) {
	e.yields = y
}

// SetModel sets the optional probability model.
func (e *Engine) SetModel(m ModelAdapter) {
	e.model = m
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Knowledge returns the knowledge base the engine scores against.
func (e *Engine) Knowledge() *knowledge.Base {
	return e.kb
}

// ClampK applies the default and maximum result counts.
func (e *Engine) ClampK(k int) int {
	if k <= 0 {
		return e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		return e.config.Limits.MaxK
	}
	return k
}

// Recommend scores the request and, when a model is configured, merges the
// model's probabilities into the ranking. Model failures are logged and the
// knowledge-based ranking is returned.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) *Response {
	start := time.Now()
	resp := e.Score(req)

	if e.model == nil {
		resp.Latency = time.Since(start)
		return resp
	}

	probs, err := e.predict(ctx, &req)
	if err != nil {
		e.modelErrors.Add(1)
		if errors.Is(err, ErrModelUnavailable) {
			metrics.RecordModelPrediction("unavailable")
		} else {
			metrics.RecordModelPrediction("error")
		}
		e.logger.Warn().Err(err).
			Str("state", req.State).
			Str("district", req.District).
			Msg("model prediction failed, using knowledge-based ranking")
		resp.Latency = time.Since(start)
		return resp
	}

	metrics.RecordModelPrediction("success")
	resp.Recommendations = Merge(resp.Recommendations, probs, e.config.Model.BlendWeight)
	resp.ModelUsed = true
	resp.Latency = time.Since(start)
	return resp
}

func (e *Engine) predict(ctx context.Context, req *Request) (map[string]float64, error) {
	e.modelCalls.Add(1)

	ctx, cancel := context.WithTimeout(ctx, e.config.Model.Timeout)
	defer cancel()

	_, found := e.lookup(req.State, req.District)
	var stats map[string]models.YieldStats
	if found {
		stats = e.stateStats(req.State)
	}
	fv := BuildFeatureVector(&req.Weather, req.Season, found, stats)
	return e.model.PredictProbabilities(ctx, fv)
}

// Score produces the knowledge-based top-k ranking. It never fails: an
// unknown season yields an empty list.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Score(req Request) *Response {
	start := time.Now()
	e.requestCount.Add(1)

	req.K = e.ClampK(req.K)
	logger := e.logger.With().
		Str("season", string(req.Season)).
		Str("state", req.State).
		Str("district", req.District).
		Int("k", req.K).
		Logger()

	candidates := e.candidatePool(req.Season, req.K)
	if len(candidates) == 0 {
		e.emptyCandidates.Add(1)
		logger.Debug().Msg("no candidates for season")
		return &Response{Recommendations: []models.Recommendation{}, Latency: time.Since(start)}
	}

	record, _ := e.lookup(req.State, req.District)
	stats := e.stateStats(req.State)

	idealBonus := e.kb.IdealWeatherBonus(req.Season, &req.Weather)
	suitableBonus := e.kb.SuitableWeatherBonus(req.Season, &req.Weather)

	recs := make([]models.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		weatherBonus := suitableBonus
		if c.ideal {
			weatherBonus = idealBonus
		}
		recs = append(recs, e.scoreCandidate(&req, c, weatherBonus, &record, stats))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Probability > recs[j].Probability
	})
	if len(recs) > req.K {
		recs = recs[:req.K]
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Msg("scoring complete")

	return &Response{
		Recommendations: recs,
		Candidates:      len(candidates),
		Latency:         time.Since(start),
	}
}

type candidate struct {
	crop  string
	ideal bool
}

// candidatePool takes ideal crops up to 2k, then fills with suitable crops.
func (e *Engine) candidatePool(s models.Season, k int) []candidate {
	entry, ok := e.kb.Entry(s)
	if !ok {
		return nil
	}

	limit := 2 * k
	pool := make([]candidate, 0, limit)
	for _, crop := range entry.Ideal {
		if len(pool) == limit {
			return pool
		}
		pool = append(pool, candidate{crop: crop, ideal: true})
	}
	for _, crop := range entry.Suitable {
		if len(pool) == limit {
			break
		}
		pool = append(pool, candidate{crop: crop})
	}
	return pool
}

func (e *Engine) scoreCandidate(
	req *Request,
	c candidate,
	weatherBonus float64,
	record *models.DistrictRecord,
	stats map[string]models.YieldStats,
) models.Recommendation {
	sc := &e.config.Scores

	score := sc.SuitableBase
	if c.ideal {
		score = sc.IdealBase
	}
	score += weatherBonus

	if e.kb.RegionalMatch(req.State, c.crop) {
		score += sc.Regional
	}

	historical := record.HasHistoricalCrop(c.crop)
	if historical {
		score += sc.Historical
	}

	efficiency := 0.0
	if ys, ok := stats[c.crop]; ok {
		efficiency = ys.YieldEfficiency
		score += e.yieldBonus(ys)
	}

	score = math.Min(score, sc.Cap)

	return models.Recommendation{
		Crop:            c.crop,
		Probability:     score,
		Confidence:      models.ConfidenceFor(score),
		Season:          req.Season,
		Weather:         req.Weather,
		Suitability:     e.kb.Reason(req.Season, c.crop, &req.Weather),
		HistoricalMatch: historical,
		YieldEfficiency: efficiency,
	}
}

func (e *Engine) yieldBonus(ys models.YieldStats) float64 {
	sc := &e.config.Scores

	var bonus float64
	switch {
	case ys.YieldEfficiency > sc.YieldHighThreshold:
		bonus = sc.YieldHigh
	case ys.YieldEfficiency > sc.YieldMediumThreshold:
		bonus = sc.YieldMedium
	default:
		bonus = sc.YieldLow
	}
	if ys.AvgYield > sc.AvgYieldThreshold {
		bonus += sc.AvgYield
	}
	return bonus
}

func (e *Engine) lookup(state, district string) (models.DistrictRecord, bool) {
	if e.districts == nil {
		return models.DistrictRecord{}, false
	}
	return e.districts.Lookup(state, district)
}

func (e *Engine) stateStats(state string) map[string]models.YieldStats {
	if e.yields == nil {
		return nil
	}
	return e.yields.StateStats(state)
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:    e.requestCount.Load(),
		ModelCalls:      e.modelCalls.Load(),
		ModelErrors:     e.modelErrors.Load(),
		EmptyCandidates: e.emptyCandidates.Load(),
	}
}
