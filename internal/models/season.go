// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Season is one of the five agronomic periods used across the service.
type Season string

const (
	SeasonKharif    Season = "kharif"
	SeasonRabiEarly Season = "rabi_early"
	SeasonRabiLate  Season = "rabi_late"
	SeasonZaid      Season = "zaid"
	SeasonPerennial Season = "perennial"
)

// ErrUnknownSeason is returned by ParseSeason for unrecognised identifiers.
var ErrUnknownSeason = errors.New("unknown season")

// AllSeasons returns every season in feature-index order.
func AllSeasons() []Season {
	return []Season{SeasonKharif, SeasonRabiEarly, SeasonRabiLate, SeasonZaid, SeasonPerennial}
}

// ParseSeason converts a case-insensitive identifier into a Season.
func ParseSeason(s string) (Season, error) {
	season := Season(strings.ToLower(strings.TrimSpace(s)))
	if season.Valid() {
		return season, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeason, s)
}

// Valid reports whether s is one of the five known seasons.
func (s Season) Valid() bool {
	return s.Index() >= 0
}

// Index is the position of the season in AllSeasons, or -1.
// The model feature vector encodes the season with this value.
func (s Season) Index() int {
	for i, season := range AllSeasons() {
		if season == s {
			return i
		}
	}
	return -1
}

func (s Season) String() string {
	return string(s)
}

// SeasonInfo is the informational row served by the seasons listing.
type SeasonInfo struct {
	Season       Season   `json:"season"`
	Months       []int    `json:"months"`
	Description  string   `json:"description"`
	TypicalCrops []string `json:"typical_crops"`
}
