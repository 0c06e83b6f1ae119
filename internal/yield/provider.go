// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package yield serves state-level crop yield statistics produced by the
// offline aggregation job (crop_yield_features.json).
package yield

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropwise/internal/models"
)

// ErrNoData is returned by LoadFile when the statistics file is absent.
var ErrNoData = errors.New("yield statistics not found")

// fileFormat is the on-disk layout.
type fileFormat struct {
	StateCropPerformance map[string]map[string]models.YieldStats `json:"state_crop_performance"`
}

// Provider is an immutable index of per (state, crop) statistics.
type Provider struct {
	byState map[string]map[string]models.YieldStats
}

// New wraps an already-built index.
func New(byState map[string]map[string]models.YieldStats) *Provider {
	if byState == nil {
		byState = map[string]map[string]models.YieldStats{}
	}
	return &Provider{byState: byState}
}

// LoadFile reads the JSON statistics file.
func LoadFile(path string) (*Provider, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoData, path)
		}
		return nil, fmt.Errorf("read yield statistics: %w", err)
	}
	return Parse(data)
}

// Parse decodes the JSON statistics document.
func Parse(data []byte) (*Provider, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yield statistics: %w", err)
	}
	return New(f.StateCropPerformance), nil
}

// StateStats returns crop statistics for a state. The result is empty,
// never nil, when the state is unknown. Callers must not modify it.
func (p *Provider) StateStats(state string) map[string]models.YieldStats {
	if p == nil {
		return map[string]models.YieldStats{}
	}
	if stats, ok := p.byState[state]; ok {
		return stats
	}
	return map[string]models.YieldStats{}
}

// Get returns statistics for one (state, crop) pair.
func (p *Provider) Get(state, crop string) (models.YieldStats, bool) {
	s, ok := p.StateStats(state)[crop]
	return s, ok
}

// States returns the sorted states with statistics.
func (p *Provider) States() []string {
	if p == nil {
		return nil
	}
	states := make([]string, 0, len(p.byState))
	for s := range p.byState {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
