// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package district serves district reference data: coordinates and the
// crops historically grown there. Records are matched by exact
// (state, district) equality; anything else falls back to a small table of
// city coordinates and finally the national centroid.
package district

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cropwise/internal/models"
)

// ErrDataNotFound is returned when a district has no reference record.
var ErrDataNotFound = errors.New("district data not found")

// Required CSV columns. Other columns are ignored.
const (
	colState           = "state"
	colDistrict        = "district"
	colLat             = "lat"
	colLon             = "lon"
	colHistoricalCrops = "historical_crops"
)

type recordKey struct {
	state, district string
}

// Repository is an immutable in-memory index of district records.
type Repository struct {
	records map[recordKey]models.DistrictRecord
	byState map[string][]string
}

// NewRepository indexes records. Later duplicates of a (state, district)
// pair are ignored so the first row in the file wins.
func NewRepository(records []models.DistrictRecord) *Repository {
	r := &Repository{
		records: make(map[recordKey]models.DistrictRecord, len(records)),
		byState: make(map[string][]string),
	}
	for _, rec := range records {
		key := recordKey{rec.State, rec.District}
		if _, dup := r.records[key]; dup {
			continue
		}
		r.records[key] = rec
		r.byState[rec.State] = append(r.byState[rec.State], rec.District)
	}
	for state := range r.byState {
		sort.Strings(r.byState[state])
	}
	return r
}

// LoadCSV reads district metadata from a CSV file with a header row.
func LoadCSV(path string) (*Repository, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("open district metadata: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewRepository(records), nil
}

// ParseCSV parses district rows. Rows with unparseable coordinates are
// rejected with the offending line number.
func ParseCSV(r io.Reader) ([]models.DistrictRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colState, colDistrict, colLat, colLon} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []models.DistrictRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		lat, err := strconv.ParseFloat(field(row, colLat), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid lat: %w", line, err)
		}
		lon, err := strconv.ParseFloat(field(row, colLon), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid lon: %w", line, err)
		}

		records = append(records, models.DistrictRecord{
			State:           field(row, colState),
			District:        field(row, colDistrict),
			Latitude:        lat,
			Longitude:       lon,
			HistoricalCrops: splitCrops(field(row, colHistoricalCrops)),
		})
	}
	return records, nil
}

func splitCrops(s string) []string {
	if s == "" {
		return nil
	}
	var crops []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			crops = append(crops, c)
		}
	}
	return crops
}

// Find returns the record for (state, district) or ErrDataNotFound.
func (r *Repository) Find(state, district string) (models.DistrictRecord, error) {
	if r != nil {
		if rec, ok := r.records[recordKey{state, district}]; ok {
			return rec, nil
		}
	}
	return models.DistrictRecord{}, fmt.Errorf("%w: %s/%s", ErrDataNotFound, state, district)
}

// Lookup returns the record for (state, district) when one exists.
func (r *Repository) Lookup(state, district string) (models.DistrictRecord, bool) {
	rec, err := r.Find(state, district)
	return rec, err == nil
}

// Len returns the number of indexed districts.
func (r *Repository) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// States returns the sorted states present in the data, or the built-in
// state list when the repository is empty.
func (r *Repository) States() []string {
	if r.Len() == 0 {
		return DefaultStates()
	}
	states := make([]string, 0, len(r.byState))
	for s := range r.byState {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Districts returns the sorted districts of a state, falling back to the
// built-in table when the repository has none.
func (r *Repository) Districts(state string) []string {
	if r.Len() > 0 {
		if ds, ok := r.byState[state]; ok {
			return append([]string(nil), ds...)
		}
		return []string{}
	}
	return DefaultDistricts(state)
}

// LocationSource says how coordinates were resolved.
type LocationSource string

const (
	SourceRecord   LocationSource = "district_record"
	SourceCity     LocationSource = "city_default"
	SourceCentroid LocationSource = "national_centroid"
)

// Location is a resolved coordinate pair.
type Location struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Source    LocationSource `json:"source"`
}

// Locate resolves coordinates: exact record, then city default, then the
// national centroid. It never fails.
func (r *Repository) Locate(state, district string) Location {
	if rec, ok := r.Lookup(state, district); ok {
		return Location{Latitude: rec.Latitude, Longitude: rec.Longitude, Source: SourceRecord}
	}
	if c, ok := cityDefaults[state][district]; ok {
		return Location{Latitude: c[0], Longitude: c[1], Source: SourceCity}
	}
	return Location{Latitude: CentroidLatitude, Longitude: CentroidLongitude, Source: SourceCentroid}
}
