// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package models

import (
	"net/url"
	"time"
)

// WeatherSnapshot is the weather used to score a request. Every field is
// populated; when the live fetch fails a seasonal synthetic snapshot is used.
type WeatherSnapshot struct {
	Temperature          float64   `json:"temperature"`
	Humidity             float64   `json:"humidity"`
	Rainfall             float64   `json:"rainfall"`
	WindSpeed            float64   `json:"wind_speed"`
	PrecipitationCurrent float64   `json:"precipitation_current"`
	PrecipitationWeek    float64   `json:"precipitation_week"`
	FetchedAt            time.Time `json:"fetch_time"`
	Source               string    `json:"source"`
}

// Weather snapshot sources.
const (
	WeatherSourceLive     = "open-meteo"
	WeatherSourceFallback = "fallback"
)

// DistrictRecord is read-only reference data for one district.
type DistrictRecord struct {
	State           string   `json:"state"`
	District        string   `json:"district"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	HistoricalCrops []string `json:"historical_crops"`
}

// HasHistoricalCrop reports whether crop was historically grown in the district.
func (d *DistrictRecord) HasHistoricalCrop(crop string) bool {
	for _, c := range d.HistoricalCrops {
		if c == crop {
			return true
		}
	}
	return false
}

// YieldStats are per (state, crop) aggregates of historical production.
type YieldStats struct {
	AvgYield        float64 `json:"avg_yield"`
	YieldEfficiency float64 `json:"yield_efficiency"`
	YieldStd        float64 `json:"yield_std"`
	TotalArea       float64 `json:"total_area"`
	TotalProduction float64 `json:"total_production"`
	RecordCount     int     `json:"record_count"`
}

// Confidence is the bucketed reading of a recommendation probability.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Confidence thresholds; a score must exceed the value to reach the bucket.
const (
	HighConfidenceThreshold   = 0.9
	MediumConfidenceThreshold = 0.7
)

// ConfidenceFor buckets a probability.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score > HighConfidenceThreshold:
		return ConfidenceHigh
	case score > MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Recommendation is one ranked crop in a response. It is built per request
// and never persisted.
type Recommendation struct {
	Crop            string          `json:"crop"`
	Probability     float64         `json:"probability"`
	Confidence      Confidence      `json:"confidence"`
	Season          Season          `json:"season"`
	Weather         WeatherSnapshot `json:"weather"`
	Suitability     string          `json:"suitability_reason"`
	HistoricalMatch bool            `json:"district_historical"`
	YieldEfficiency float64         `json:"yield_efficiency"`

	// DistrictNative is nil unless native emphasis was requested.
	DistrictNative *bool `json:"district_native,omitempty"`
}

// NativeCacheKeyAllSeasons is the season component of a cache key when the
// caller did not name a season.
const NativeCacheKeyAllSeasons = "all"

// NativeCacheKey identifies one memoized native-crop list.
type NativeCacheKey struct {
	State    string `json:"state"`
	District string `json:"district"`
	Season   string `json:"season"`
}

// String renders the key as state|district|season. Each field is
// path-escaped so a "|" inside a name cannot alias another key.
func (k NativeCacheKey) String() string {
	return url.PathEscape(k.State) + "|" + url.PathEscape(k.District) + "|" + url.PathEscape(k.Season)
}
