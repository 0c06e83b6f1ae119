// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package season maps calendar dates onto the five agronomic seasons.
//
// The calendar never yields SeasonPerennial; perennial recommendations are
// only produced when a caller selects that season explicitly.
package season

import (
	"time"

	"github.com/tomtom215/cropwise/internal/models"
)

// IST is India Standard Time. It has no daylight saving, so a fixed zone
// avoids depending on the host tz database.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// monthSeasons partitions the twelve months; index 0 is January.
var monthSeasons = [12]models.Season{
	models.SeasonRabiLate,  // Jan
	models.SeasonRabiLate,  // Feb
	models.SeasonRabiLate,  // Mar
	models.SeasonZaid,      // Apr
	models.SeasonZaid,      // May
	models.SeasonKharif,    // Jun
	models.SeasonKharif,    // Jul
	models.SeasonKharif,    // Aug
	models.SeasonKharif,    // Sep
	models.SeasonRabiEarly, // Oct
	models.SeasonRabiEarly, // Nov
	models.SeasonRabiLate,  // Dec
}

// ForMonth returns the season active in the given month.
// Out-of-range months are normalised modulo 12.
func ForMonth(m time.Month) models.Season {
	idx := (int(m) - 1) % 12
	if idx < 0 {
		idx += 12
	}
	return monthSeasons[idx]
}

// Current returns the season for now, evaluated in IST.
func Current(now time.Time) models.Season {
	return ForMonth(now.In(IST).Month())
}

// Resolve returns the explicit season when set, otherwise the current one.
func Resolve(explicit models.Season, now time.Time) models.Season {
	if explicit != "" {
		return explicit
	}
	return Current(now)
}
