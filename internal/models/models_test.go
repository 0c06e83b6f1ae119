// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package models

import (
	"errors"
	"testing"
)

func TestParseSeason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Season
		wantErr bool
	}{
		{"kharif", SeasonKharif, false},
		{" Rabi_Early ", SeasonRabiEarly, false},
		{"RABI_LATE", SeasonRabiLate, false},
		{"zaid", SeasonZaid, false},
		{"perennial", SeasonPerennial, false},
		{"monsoon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeason(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSeason) {
					t.Fatalf("ParseSeason(%q) error = %v, want ErrUnknownSeason", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeason(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeason(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeasonIndex(t *testing.T) {
	t.Parallel()

	for i, s := range AllSeasons() {
		if s.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", s, s.Index(), i)
		}
	}
	if Season("winter").Index() != -1 {
		t.Error("unknown season should have index -1")
	}
}

func TestConfidenceFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Confidence
	}{
		{1.0, ConfidenceHigh},
		{0.91, ConfidenceHigh},
		{0.9, ConfidenceMedium},
		{0.71, ConfidenceMedium},
		{0.7, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ConfidenceFor(tt.score); got != tt.want {
			t.Errorf("ConfidenceFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNativeCacheKeyString(t *testing.T) {
	t.Parallel()

	key := NativeCacheKey{State: "Punjab", District: "Ludhiana", Season: NativeCacheKeyAllSeasons}
	if got := key.String(); got != "Punjab|Ludhiana|all" {
		t.Errorf("String() = %q", got)
	}

	spaced := NativeCacheKey{State: "Tamil Nadu", District: "Chennai", Season: "kharif"}
	if got := spaced.String(); got != "Tamil%20Nadu|Chennai|kharif" {
		t.Errorf("String() = %q", got)
	}

	// A separator inside a field must not make two keys collide.
	a := NativeCacheKey{State: "X", District: "Y|Z", Season: NativeCacheKeyAllSeasons}
	b := NativeCacheKey{State: "X|Y", District: "Z", Season: NativeCacheKeyAllSeasons}
	if a.String() == b.String() {
		t.Errorf("distinct keys render identically: %q", a.String())
	}
}

func TestDistrictRecordHasHistoricalCrop(t *testing.T) {
	t.Parallel()

	rec := DistrictRecord{HistoricalCrops: []string{"wheat", "rice"}}
	if !rec.HasHistoricalCrop("rice") {
		t.Error("expected rice to be historical")
	}
	if rec.HasHistoricalCrop("cotton") {
		t.Error("cotton should not be historical")
	}
}
