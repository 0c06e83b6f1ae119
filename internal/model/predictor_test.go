// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package model

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cropwise/internal/breaker"
	"github.com/tomtom215/cropwise/internal/models"
	"github.com/tomtom215/cropwise/internal/recommend"
)

func newTestPredictor(t *testing.T, handler http.HandlerFunc) (*Predictor, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	settings := breaker.DefaultSettings()
	settings.MinRequests = 2
	settings.FailureRatio = 0.5

	p, err := NewPredictor(Config{URL: srv.URL, Breaker: settings})
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}
	return p, &calls
}

func sampleVector() recommend.FeatureVector {
	w := &models.WeatherSnapshot{Temperature: 28, Humidity: 80, Rainfall: 1200}
	return recommend.BuildFeatureVector(w, models.SeasonKharif, false, nil)
}

func TestNewPredictor_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewPredictor(Config{})
	if !errors.Is(err, recommend.ErrModelUnavailable) {
		t.Errorf("NewPredictor() error = %v, want ErrModelUnavailable", err)
	}
}

func TestPredictProbabilities(t *testing.T) {
	t.Parallel()

	p, _ := newTestPredictor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Features) != recommend.FeatureCount || len(req.FeatureNames) != recommend.FeatureCount {
			t.Errorf("got %d features / %d names, want %d", len(req.Features), len(req.FeatureNames), recommend.FeatureCount)
		}
		if req.Features[3] != 28 {
			t.Errorf("temperature feature = %v, want 28", req.Features[3])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"probabilities":{"rice":0.7,"maize":0.2}}`))
	})

	probs, err := p.PredictProbabilities(context.Background(), sampleVector())
	if err != nil {
		t.Fatalf("PredictProbabilities() error = %v", err)
	}
	if probs["rice"] != 0.7 || probs["maize"] != 0.2 {
		t.Errorf("probs = %v", probs)
	}
	if p.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", p.BreakerState())
	}
}

func TestPredictProbabilities_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusServiceUnavailable, `oops`, recommend.ErrModelUnavailable},
		{"malformed body", http.StatusOK, `{not json`, recommend.ErrModelInferenceError},
		{"reported error", http.StatusBadRequest, `{"error":"feature shape mismatch"}`, recommend.ErrModelInferenceError},
		{"empty probabilities", http.StatusOK, `{"probabilities":{}}`, recommend.ErrModelInferenceError},
		{"probability out of range", http.StatusOK, `{"probabilities":{"rice":1.7}}`, recommend.ErrModelInferenceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, _ := newTestPredictor(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.PredictProbabilities(context.Background(), sampleVector())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPredictProbabilities_BreakerOpens(t *testing.T) {
	t.Parallel()

	p, calls := newTestPredictor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := p.PredictProbabilities(ctx, sampleVector()); !errors.Is(err, recommend.ErrModelUnavailable) {
			t.Fatalf("call %d error = %v, want ErrModelUnavailable", i, err)
		}
	}
	if p.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open", p.BreakerState())
	}

	_, err := p.PredictProbabilities(ctx, sampleVector())
	if !errors.Is(err, recommend.ErrModelUnavailable) {
		t.Errorf("rejected call error = %v, want ErrModelUnavailable", err)
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Errorf("server calls = %d, want 2 (third rejected by breaker)", got)
	}
}

func TestPredictor_WithEngine(t *testing.T) {
	t.Parallel()

	p, _ := newTestPredictor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"probabilities":{"maize":1.0}}`))
	})

	cfg := recommend.DefaultConfig()
	cfg.Model.BlendWeight = 0.5
	e, err := recommend.NewEngine(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.SetModel(p)

	resp := e.Recommend(context.Background(), recommend.Request{
		Season:  models.SeasonKharif,
		Weather: models.WeatherSnapshot{Temperature: 10, Humidity: 10},
		State:   "Gujarat", District: "Surat", K: 4,
	})
	if !resp.ModelUsed {
		t.Fatal("ModelUsed = false, want true")
	}
	if resp.Recommendations[0].Crop != "maize" {
		t.Errorf("top = %q, want maize after blending", resp.Recommendations[0].Crop)
	}
}
