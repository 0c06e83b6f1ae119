// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package season

import (
	"testing"
	"time"

	"github.com/tomtom215/cropwise/internal/models"
)

func TestForMonthIsTotalPartition(t *testing.T) {
	t.Parallel()

	want := map[time.Month]models.Season{
		time.January:   models.SeasonRabiLate,
		time.February:  models.SeasonRabiLate,
		time.March:     models.SeasonRabiLate,
		time.April:     models.SeasonZaid,
		time.May:       models.SeasonZaid,
		time.June:      models.SeasonKharif,
		time.July:      models.SeasonKharif,
		time.August:    models.SeasonKharif,
		time.September: models.SeasonKharif,
		time.October:   models.SeasonRabiEarly,
		time.November:  models.SeasonRabiEarly,
		time.December:  models.SeasonRabiLate,
	}

	counts := make(map[models.Season]int)
	for m := time.January; m <= time.December; m++ {
		got := ForMonth(m)
		if !got.Valid() {
			t.Fatalf("ForMonth(%s) = %q, not a known season", m, got)
		}
		if got != want[m] {
			t.Errorf("ForMonth(%s) = %s, want %s", m, got, want[m])
		}
		counts[got]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 12 {
		t.Errorf("months mapped = %d, want 12", total)
	}
	if counts[models.SeasonPerennial] != 0 {
		t.Error("calendar must never yield perennial")
	}
}

func TestCurrentUsesIST(t *testing.T) {
	t.Parallel()

	// 31 May 20:00 UTC is 1 June 01:30 IST.
	now := time.Date(2026, time.May, 31, 20, 0, 0, 0, time.UTC)
	if got := Current(now); got != models.SeasonKharif {
		t.Errorf("Current() = %s, want kharif", got)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, IST)
	if got := Resolve("", now); got != models.SeasonRabiEarly {
		t.Errorf("Resolve(empty) = %s, want rabi_early", got)
	}
	if got := Resolve(models.SeasonPerennial, now); got != models.SeasonPerennial {
		t.Errorf("Resolve(perennial) = %s", got)
	}
}

func TestAllCoversEverySeason(t *testing.T) {
	t.Parallel()

	rows := All()
	if len(rows) != len(models.AllSeasons()) {
		t.Fatalf("All() returned %d rows", len(rows))
	}
	for i, row := range rows {
		if row.Season != models.AllSeasons()[i] {
			t.Errorf("row %d season = %s", i, row.Season)
		}
		if len(row.Months) == 0 || len(row.TypicalCrops) == 0 || row.Description == "" {
			t.Errorf("row for %s is incomplete: %+v", row.Season, row)
		}
	}

	rows[0].TypicalCrops[0] = "mutated"
	if info, _ := Info(models.SeasonKharif); info.TypicalCrops[0] != "rice" {
		t.Error("All() must not expose the underlying table")
	}
}
