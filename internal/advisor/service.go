// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package advisor is the request-level entry point of the service. It
// validates requests, resolves the season and district coordinates, fetches
// weather with a synthetic fallback, runs the scoring engine and applies the
// optional native-crop emphasis.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cropwise/internal/district"
	"github.com/tomtom215/cropwise/internal/knowledge"
	"github.com/tomtom215/cropwise/internal/logging"
	"github.com/tomtom215/cropwise/internal/metrics"
	"github.com/tomtom215/cropwise/internal/models"
	"github.com/tomtom215/cropwise/internal/recommend"
	"github.com/tomtom215/cropwise/internal/season"
	"github.com/tomtom215/cropwise/internal/validation"
)

// ErrInvalidRequest is the only error returned to callers. It wraps the
// *validation.RequestValidationError describing the offending fields.
var ErrInvalidRequest = errors.New("invalid request")

// WeatherFetcher returns current conditions for a coordinate.
type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
}

// Directory is the district reference data the service reads.
type Directory interface {
	Lookup(state, district string) (models.DistrictRecord, bool)
	Locate(state, district string) district.Location
	States() []string
	Districts(state string) []string
	Len() int
}

// BreakerReporter exposes a circuit breaker state ("closed", "half-open"
// or "open").
type BreakerReporter interface {
	BreakerState() string
}

// Config holds service-level settings.
type Config struct {
	// WeatherTimeout bounds a single weather fetch.
	WeatherTimeout time.Duration `json:"weather_timeout"`
}

// DefaultConfig returns the default service settings.
func DefaultConfig() Config {
	return Config{WeatherTimeout: 10 * time.Second}
}

// Deps are the collaborators of a Service. Engine and Native are required.
// A nil Weather always uses the seasonal fallback snapshot. Model, when
// set, is the configured model client; its breaker feeds Health.
type Deps struct {
	Engine      *recommend.Engine
	Native      *recommend.NativeInferer
	Directory   Directory
	Weather     WeatherFetcher
	YieldStates func() []string
	ModelLoaded bool
	Model       BreakerReporter
}

// Service answers recommendation and reference-data requests.
// It is safe for concurrent use.
type Service struct {
	cfg       Config
	engine    *recommend.Engine
	native    *recommend.NativeInferer
	kb        *knowledge.Base
	directory Directory
	weather   WeatherFetcher
	yieldsFn  func() []string
	modelOn   bool
	model     BreakerReporter
	logger    zerolog.Logger
	now       func() time.Time
}

// Request asks for the top crops of a district.
type Request struct {
	State          string `json:"state" validate:"notblank,max=100"`
	District       string `json:"district" validate:"notblank,max=100"`
	Season         string `json:"season,omitempty" validate:"omitempty,season"`
	TopK           int    `json:"top_k"`
	DistrictNative bool   `json:"district_native"`
}

// Result is the answer to a Request.
type Result struct {
	State           string                  `json:"state"`
	District        string                  `json:"district"`
	Season          models.Season           `json:"season"`
	Recommendations []models.Recommendation `json:"predictions"`
	Weather         models.WeatherSnapshot  `json:"weather_data"`
	Location        district.Location       `json:"location"`
	ModelUsed       bool                    `json:"model_used"`
	Timestamp       time.Time               `json:"timestamp"`
}

// NativeRequest asks for the crops native to a district.
type NativeRequest struct {
	State    string `json:"state" validate:"notblank,max=100"`
	District string `json:"district" validate:"notblank,max=100"`
	Season   string `json:"season,omitempty" validate:"omitempty,season"`
}

// NativeResult lists native crops, most native first. Season is the
// requested season, or the current one when none was given.
type NativeResult struct {
	State       string        `json:"state"`
	District    string        `json:"district"`
	Season      models.Season `json:"season"`
	NativeCrops []string      `json:"native_crops"`
}

// Health reports data-source availability.
type Health struct {
	Status           string        `json:"status"`
	CurrentSeason    models.Season `json:"current_season"`
	ModelLoaded      bool          `json:"model_loaded"`
	ModelAvailable   bool          `json:"model_available"`
	ModelBreaker     string        `json:"model_breaker,omitempty"`
	FeatureCount     int           `json:"features"`
	DistrictsLoaded  int           `json:"districts_loaded"`
	YieldStates      int           `json:"yield_states"`
	WeatherAvailable bool          `json:"weather_available"`
	WeatherBreaker   string        `json:"weather_breaker,omitempty"`
	NativeStore      string        `json:"native_store"`
	Timestamp        time.Time     `json:"timestamp"`
}

// Health statuses.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// NewService wires a Service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, deps Deps, logger zerolog.Logger) (*Service, error) {
	if deps.Engine == nil {
		return nil, errors.New("advisor: engine is required")
	}
	if deps.Native == nil {
		return nil, errors.New("advisor: native inferer is required")
	}
	if cfg.WeatherTimeout <= 0 {
		return nil, fmt.Errorf("weather_timeout must be positive, got %v", cfg.WeatherTimeout)
	}

	dir := deps.Directory
	if dir == nil {
		dir = district.NewRepository(nil)
	}

	return &Service{
		cfg:       cfg,
		engine:    deps.Engine,
		native:    deps.Native,
		kb:        deps.Engine.Knowledge(),
		directory: dir,
		weather:   deps.Weather,
		yieldsFn:  deps.YieldStates,
		modelOn:   deps.ModelLoaded || deps.Model != nil,
		model:     deps.Model,
		logger:    logger.With().Str("component", "advisor").Logger(),
		now:       time.Now,
	}, nil
}

// Recommend returns the top crops for a district. The only error is
// ErrInvalidRequest; weather, model and reference-data failures degrade to
// defaults.
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	req.State = strings.TrimSpace(req.State)
	req.District = strings.TrimSpace(req.District)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	now := s.now()
	sn, err := s.resolveSeason(req.Season, now)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("state", req.State).
		Str("district", req.District).
		Str("season", string(sn)).
		Logger()

	loc := s.directory.Locate(req.State, req.District)
	if loc.Source != district.SourceRecord {
		logger.Debug().
			Err(district.ErrDataNotFound).
			Str("location_source", string(loc.Source)).
			Msg("using default coordinates")
	}

	w := s.fetchWeather(ctx, &logger, sn, loc, now)

	resp := s.engine.Recommend(ctx, recommend.Request{
		Season:   sn,
		Weather:  w,
		State:    req.State,
		District: req.District,
		K:        req.TopK,
	})

	recs := resp.Recommendations
	if req.DistrictNative {
		k := s.engine.ClampK(req.TopK)
		native := s.native.NativeCrops(ctx, req.State, req.District, sn)
		cfg := s.engine.Config()
		recs = EmphasizeNative(recs, native, cfg.NativeSetSize(k), cfg.Native.Boost, cfg.Scores.Cap, k)
	}

	metrics.RecordRecommendation(string(sn), req.DistrictNative, time.Since(start))
	logger.Debug().
		Int("returned", len(recs)).
		Bool("model_used", resp.ModelUsed).
		Dur("latency", time.Since(start)).
		Msg("recommendation served")

	return &Result{
		State:           req.State,
		District:        req.District,
		Season:          sn,
		Recommendations: recs,
		Weather:         w,
		Location:        loc,
		ModelUsed:       resp.ModelUsed,
		Timestamp:       now,
	}, nil
}

func (s *Service) resolveSeason(raw string, now time.Time) (models.Season, error) {
	if raw == "" {
		return season.Current(now), nil
	}
	sn, err := models.ParseSeason(raw)
	if err != nil {
		verr := validation.NewRequestValidationError("season", "season", err.Error(), raw)
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, verr)
	}
	return sn, nil
}

func (s *Service) fetchWeather(
	ctx context.Context,
	logger *zerolog.Logger,
	sn models.Season,
	loc district.Location,
	now time.Time,
) models.WeatherSnapshot {
	if s.weather == nil {
		metrics.RecordWeatherFetch("fallback", 0)
		return s.kb.FallbackWeather(sn, now)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.WeatherTimeout)
	defer cancel()

	w, err := s.weather.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		logger.Warn().Err(err).
			Float64("lat", loc.Latitude).
			Float64("lon", loc.Longitude).
			Msg("weather unavailable, using seasonal fallback")
		metrics.RecordWeatherFetch("fallback", 0)
		return s.kb.FallbackWeather(sn, now)
	}
	return w
}

// EmphasizeNative boosts recommendations whose crop is among the first
// setSize native crops, marks every item, orders native items first (each
// group by descending probability, stable) and truncates to k.
func EmphasizeNative(recs []models.Recommendation, native []string, setSize int, boost, ceiling float64, k int) []models.Recommendation {
	if setSize > len(native) {
		setSize = len(native)
	}
	set := make(map[string]struct{}, setSize)
	for _, c := range native[:setSize] {
		set[c] = struct{}{}
	}

	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	for i := range out {
		_, isNative := set[out[i].Crop]
		if isNative {
			p := math.Max(0, math.Min(out[i].Probability+boost, ceiling))
			out[i].Probability = p
			out[i].Confidence = models.ConfidenceFor(p)
		}
		flag := isNative
		out[i].DistrictNative = &flag
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := *out[i].DistrictNative, *out[j].DistrictNative
		if ni != nj {
			return ni
		}
		return out[i].Probability > out[j].Probability
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// NativeCrops lists the crops native to a district. Only ErrInvalidRequest
// is returned.
func (s *Service) NativeCrops(ctx context.Context, req NativeRequest) (*NativeResult, error) {
	req.State = strings.TrimSpace(req.State)
	req.District = strings.TrimSpace(req.District)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var sn models.Season
	if req.Season != "" {
		parsed, err := s.resolveSeason(req.Season, s.now())
		if err != nil {
			return nil, err
		}
		sn = parsed
	}

	crops := s.native.NativeCrops(ctx, req.State, req.District, sn)
	return &NativeResult{
		State:       req.State,
		District:    req.District,
		Season:      season.Resolve(sn, s.now()),
		NativeCrops: crops,
	}, nil
}

// InvalidateNative drops one memoized native-crop list. An empty season
// targets the "all" entry.
func (s *Service) InvalidateNative(ctx context.Context, state, districtName string, sn models.Season) error {
	return s.native.Invalidate(ctx, recommend.NativeKey(state, districtName, sn))
}

// PurgeNative drops every memoized native-crop list.
func (s *Service) PurgeNative(ctx context.Context) error {
	return s.native.InvalidateAll(ctx)
}

// WarmNative computes the all-season native list of every known district
// and returns how many districts were visited. It stops early when ctx is
// done.
func (s *Service) WarmNative(ctx context.Context) (int, error) {
	warmed := 0
	for _, state := range s.directory.States() {
		for _, d := range s.directory.Districts(state) {
			if err := ctx.Err(); err != nil {
				return warmed, err
			}
			s.native.NativeCrops(ctx, state, d, "")
			warmed++
		}
	}
	return warmed, nil
}

// ListSeasons returns the informational table of every season.
func (s *Service) ListSeasons() []models.SeasonInfo {
	return season.All()
}

// CurrentSeason returns the season of the current month.
func (s *Service) CurrentSeason() models.Season {
	return season.Current(s.now())
}

// ListStates returns the sorted known states.
func (s *Service) ListStates() []string {
	return s.directory.States()
}

// ListDistricts returns the districts of a state. The list is empty, never
// nil, for an unknown state.
func (s *Service) ListDistricts(state string) []string {
	ds := s.directory.Districts(strings.TrimSpace(state))
	if ds == nil {
		return []string{}
	}
	return ds
}

// Health reports which data sources are available. The service is degraded
// when the weather or model circuit is open; it still answers with fallback
// weather and knowledge-only scores.
func (s *Service) Health() Health {
	h := Health{
		Status:          StatusHealthy,
		CurrentSeason:   s.CurrentSeason(),
		ModelLoaded:     s.modelOn,
		ModelAvailable:  s.modelOn,
		FeatureCount:    recommend.FeatureCount,
		DistrictsLoaded: s.directory.Len(),
		NativeStore:     s.native.StoreName(),
		Timestamp:       s.now(),
	}
	if s.yieldsFn != nil {
		h.YieldStates = len(s.yieldsFn())
	}

	if s.weather != nil {
		h.WeatherAvailable = true
		if b, ok := s.weather.(interface{ BreakerState() string }); ok {
			h.WeatherBreaker = b.BreakerState()
			if h.WeatherBreaker == "open" {
				h.WeatherAvailable = false
				h.Status = StatusDegraded
			}
		}
	}

	if s.model != nil {
		h.ModelBreaker = s.model.BreakerState()
		if h.ModelBreaker == "open" {
			h.ModelAvailable = false
			h.Status = StatusDegraded
		}
	}
	return h
}
