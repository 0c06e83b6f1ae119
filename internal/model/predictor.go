// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

// Package model calls an external crop classifier over HTTP.
//
// The classifier receives the 33-column feature vector and answers with a
// probability per crop. Transport failures, 5xx responses and an open
// circuit map to recommend.ErrModelUnavailable; malformed answers map to
// recommend.ErrModelInferenceError.
package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cropwise/internal/breaker"
	"github.com/tomtom215/cropwise/internal/recommend"
)

// Config configures the HTTP predictor.
type Config struct {
	URL     string
	Timeout time.Duration
	Breaker breaker.Settings
}

// Predictor implements recommend.ModelAdapter against a JSON endpoint.
type Predictor struct {
	client  *http.Client
	url     string
	breaker *breaker.Breaker
}

type predictRequest struct {
	Features     []float64 `json:"features"`
	FeatureNames []string  `json:"feature_names"`
}

type predictResponse struct {
	Probabilities map[string]float64 `json:"probabilities"`
	Error         string             `json:"error,omitempty"`
}

// errServer marks a 5xx answer so the breaker counts it as a failure.
var errServer = errors.New("model server error")

// NewPredictor creates a predictor. The URL is required.
func NewPredictor(cfg Config) (*Predictor, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: no model URL configured", recommend.ErrModelUnavailable)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Predictor{
		client:  &http.Client{Timeout: cfg.Timeout},
		url:     cfg.URL,
		breaker: breaker.New("crop-model", cfg.Breaker),
	}, nil
}

// BreakerState exposes the circuit state for health reporting.
func (p *Predictor) BreakerState() string {
	return p.breaker.State()
}

// PredictProbabilities sends the feature vector and returns crop probabilities.
func (p *Predictor) PredictProbabilities(ctx context.Context, fv recommend.FeatureVector) (map[string]float64, error) {
	body, err := json.Marshal(predictRequest{
		Features:     fv[:],
		FeatureNames: recommend.FeatureNames[:],
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal features: %w", recommend.ErrModelInferenceError, err)
	}

	resp, err := breaker.Do(p.breaker, func() (*predictResponse, error) {
		return p.post(ctx, body)
	})
	if err != nil {
		if errors.Is(err, recommend.ErrModelInferenceError) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", recommend.ErrModelUnavailable, err)
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", recommend.ErrModelInferenceError, resp.Error)
	}
	if len(resp.Probabilities) == 0 {
		return nil, fmt.Errorf("%w: empty probability map", recommend.ErrModelInferenceError)
	}
	for crop, v := range resp.Probabilities {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: probability for %s out of range: %v", recommend.ErrModelInferenceError, crop, v)
		}
	}
	return resp.Probabilities, nil
}

func (p *Predictor) post(ctx context.Context, body []byte) (*predictResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", errServer, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", recommend.ErrModelInferenceError, err)
	}
	if resp.StatusCode != http.StatusOK && out.Error == "" {
		out.Error = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return &out, nil
}
