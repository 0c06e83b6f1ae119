// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package knowledge holds the static agronomic tables used for scoring:
// per-season crop lists and condition envelopes, weather-fit rules,
// suitability reasons, regional affinities and synthetic weather defaults.
//
// All tables are plain data. A Base is immutable after New returns and is
// safe for concurrent use.
package knowledge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cropwise/internal/models"
)

// ErrIncomplete is returned when a table is missing a season.
var ErrIncomplete = errors.New("knowledge base incomplete")

// Metric names a weather quantity a rule can test.
type Metric string

const (
	Temperature Metric = "temperature"
	Rainfall    Metric = "rainfall"
	Humidity    Metric = "humidity"
)

// Value reads the metric from a snapshot.
func (m Metric) Value(w *models.WeatherSnapshot) float64 {
	switch m {
	case Temperature:
		return w.Temperature
	case Rainfall:
		return w.Rainfall
	case Humidity:
		return w.Humidity
	default:
		return 0
	}
}

// Bound is an optionally open interval. A zero Bound contains everything.
type Bound struct {
	Lo, Hi         float64
	HasLo, HasHi   bool
	LoOpen, HiOpen bool
}

// AtLeast is [v, +inf).
func AtLeast(v float64) Bound { return Bound{Lo: v, HasLo: true} }

// Above is (v, +inf).
func Above(v float64) Bound { return Bound{Lo: v, HasLo: true, LoOpen: true} }

// AtMost is (-inf, v].
func AtMost(v float64) Bound { return Bound{Hi: v, HasHi: true} }

// Below is (-inf, v).
func Below(v float64) Bound { return Bound{Hi: v, HasHi: true, HiOpen: true} }

// Between is [lo, hi].
func Between(lo, hi float64) Bound { return Bound{Lo: lo, Hi: hi, HasLo: true, HasHi: true} }

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	if b.HasLo {
		if b.LoOpen && v <= b.Lo || !b.LoOpen && v < b.Lo {
			return false
		}
	}
	if b.HasHi {
		if b.HiOpen && v >= b.Hi || !b.HiOpen && v > b.Hi {
			return false
		}
	}
	return true
}

// Clause tests one metric against a bound.
type Clause struct {
	Metric Metric
	Bound  Bound
}

// Holds evaluates the clause.
func (c Clause) Holds(w *models.WeatherSnapshot) bool {
	return c.Bound.Contains(c.Metric.Value(w))
}

func allHold(clauses []Clause, w *models.WeatherSnapshot) bool {
	for _, c := range clauses {
		if !c.Holds(w) {
			return false
		}
	}
	return true
}

// ConditionEnvelope is the agro-climatic range a season's crops prefer.
type ConditionEnvelope struct {
	Temperature Bound `json:"temperature"`
	Rainfall    Bound `json:"rainfall"`
	Humidity    Bound `json:"humidity"`
}

// Entry is the knowledge for one season. Crop order is significant: the
// scoring candidate pool is drawn from the front of each list.
type Entry struct {
	Ideal      []string
	Suitable   []string
	Conditions ConditionEnvelope
}

// Predicate adds Bonus when every clause holds.
type Predicate struct {
	When  []Clause
	Bonus float64
}

// ReasonRule contributes one sentence to a suitability explanation.
// Text may reference {temperature} and {rainfall}.
type ReasonRule struct {
	Crops     []string // empty means any crop
	IdealOnly bool     // crop must be on the season's ideal list
	When      []Clause
	Text      string
}

// RegionalAffinity marks crops that are agronomically notable in a state.
type RegionalAffinity struct {
	State string
	Crops []string
}

// Tables is the raw data a Base is built from.
type Tables struct {
	Entries       map[models.Season]Entry
	IdealRules    map[models.Season][]Predicate
	SuitableRules map[models.Season][]Predicate
	Reasons       map[models.Season][]ReasonRule
	Regional      []RegionalAffinity
	Fallback      map[models.Season]models.WeatherSnapshot
	// DefaultWeather is used for seasons with no fallback row.
	DefaultWeather models.WeatherSnapshot
}

// Base is a validated, immutable knowledge base.
type Base struct {
	t Tables
}

// New validates tables for completeness over all five seasons.
func New(t Tables) (*Base, error) {
	var missing []string
	for _, s := range models.AllSeasons() {
		entry, ok := t.Entries[s]
		if !ok {
			missing = append(missing, "entries."+string(s))
			continue
		}
		if len(entry.Ideal) == 0 {
			missing = append(missing, "entries."+string(s)+".ideal")
		}
		if _, ok := t.IdealRules[s]; !ok {
			missing = append(missing, "ideal_rules."+string(s))
		}
		if _, ok := t.SuitableRules[s]; !ok {
			missing = append(missing, "suitable_rules."+string(s))
		}
		if _, ok := t.Reasons[s]; !ok {
			missing = append(missing, "reasons."+string(s))
		}
		if _, ok := t.Fallback[s]; !ok {
			missing = append(missing, "fallback."+string(s))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return &Base{t: t}, nil
}

// Default returns the built-in knowledge base.
func Default() *Base {
	b, err := New(DefaultTables())
	if err != nil {
		panic(err) // built-in tables are covered by tests
	}
	return b
}

// WithRegional returns a copy of the base with extra regional affinities
// appended after the built-in ones.
func (b *Base) WithRegional(extra []RegionalAffinity) *Base {
	if len(extra) == 0 {
		return b
	}
	t := b.t
	t.Regional = append(append([]RegionalAffinity(nil), b.t.Regional...), extra...)
	return &Base{t: t}
}

// Entry returns the season's knowledge.
func (b *Base) Entry(s models.Season) (Entry, bool) {
	e, ok := b.t.Entries[s]
	return e, ok
}

// IsIdeal reports whether crop is on the season's ideal list.
func (b *Base) IsIdeal(s models.Season, crop string) bool {
	return contains(b.t.Entries[s].Ideal, crop)
}

// IsSeasonal reports whether crop is on the season's ideal or suitable list.
func (b *Base) IsSeasonal(s models.Season, crop string) bool {
	e := b.t.Entries[s]
	return contains(e.Ideal, crop) || contains(e.Suitable, crop)
}

// IdealWeatherBonus sums every ideal-crop predicate that holds.
func (b *Base) IdealWeatherBonus(s models.Season, w *models.WeatherSnapshot) float64 {
	return sumBonus(b.t.IdealRules[s], w)
}

// SuitableWeatherBonus sums every suitable-crop predicate that holds.
func (b *Base) SuitableWeatherBonus(s models.Season, w *models.WeatherSnapshot) float64 {
	return sumBonus(b.t.SuitableRules[s], w)
}

func sumBonus(rules []Predicate, w *models.WeatherSnapshot) float64 {
	total := 0.0
	for _, r := range rules {
		if allHold(r.When, w) {
			total += r.Bonus
		}
	}
	return total
}

// RegionalMatch reports whether crop is notable in state. Only the first
// affinity row for the state is consulted.
func (b *Base) RegionalMatch(state, crop string) bool {
	for _, r := range b.t.Regional {
		if r.State == state {
			return contains(r.Crops, crop)
		}
	}
	return false
}

// Reason builds the suitability explanation for crop in season.
func (b *Base) Reason(s models.Season, crop string, w *models.WeatherSnapshot) string {
	replacer := strings.NewReplacer(
		"{temperature}", formatNumber(w.Temperature),
		"{rainfall}", formatNumber(w.Rainfall),
	)

	var reasons []string
	for _, r := range b.t.Reasons[s] {
		if len(r.Crops) > 0 && !contains(r.Crops, crop) {
			continue
		}
		if r.IdealOnly && !b.IsIdeal(s, crop) {
			continue
		}
		if !allHold(r.When, w) {
			continue
		}
		reasons = append(reasons, replacer.Replace(r.Text))
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("Suitable for %s season cultivation", s)
	}
	return strings.Join(reasons, "; ")
}

// FallbackWeather returns the synthetic snapshot for a season, stamped
// with now.
func (b *Base) FallbackWeather(s models.Season, now time.Time) models.WeatherSnapshot {
	w, ok := b.t.Fallback[s]
	if !ok {
		w = b.t.DefaultWeather
	}
	w.FetchedAt = now
	w.Source = models.WeatherSourceFallback
	return w
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
