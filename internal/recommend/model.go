// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package recommend

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/tomtom215/cropwise/internal/models"
)

// Model errors. Both are recovered by falling back to knowledge scoring.
var (
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrModelInferenceError = errors.New("model inference error")
)

// ModelAdapter wraps a trained crop classifier.
type ModelAdapter interface {
	// PredictProbabilities returns a probability per crop identifier.
	PredictProbabilities(ctx context.Context, fv FeatureVector) (map[string]float64, error)
}

// FeatureCount is the width of the classifier input.
const FeatureCount = 33

// FeatureVector is the classifier input in training column order.
type FeatureVector [FeatureCount]float64

// FeatureNames lists the column names in vector order.
var FeatureNames = [FeatureCount]string{
	"N", "P", "K", "temperature", "humidity", "ph", "rainfall",
	"soil_moisture", "sunlight_exposure", "wind_speed", "co2_concentration",
	"organic_matter", "irrigation_frequency", "crop_density", "pest_pressure",
	"fertilizer_usage", "urban_area_proximity", "frost_risk",
	"water_usage_efficiency", "district_crop_ratio", "state_avg_yield",
	"state_yield_efficiency", "state_yield_std", "season", "soil_type",
	"growth_stage", "water_source_type", "fertilizer_per_unit", "npk_ratio",
	"temp_humidity_index", "ph_category", "rainfall_category",
	"temperature_category",
}

// Agronomic defaults used where no measurement is available.
const (
	defaultNitrogen        = 50
	defaultPhosphorus      = 30
	defaultPotassium       = 40
	defaultPH              = 6.5
	defaultSoilMoisture    = 60
	defaultSunlight        = 8
	defaultCO2             = 400
	defaultOrganicMatter   = 2.5
	defaultIrrigation      = 10
	defaultCropDensity     = 200
	defaultPestPressure    = 2
	defaultFertilizer      = 40
	defaultUrbanProximity  = 30
	defaultFrostRisk       = 0
	defaultWaterEfficiency = 70
	defaultSoilType        = 1
	defaultGrowthStage     = 2
	defaultWaterSource     = 1

	districtRatioKnown   = 0.7
	districtRatioUnknown = 0.5
)

// referenceCrop supplies the state-level yield features.
const referenceCrop = "rice"

// BuildFeatureVector assembles the classifier input. State yield features
// are taken from the reference crop and only when the district is known.
func BuildFeatureVector(
	w *models.WeatherSnapshot,
	s models.Season,
	districtKnown bool,
	stateStats map[string]models.YieldStats,
) FeatureVector {
	ratio := districtRatioUnknown
	var ref models.YieldStats
	if districtKnown {
		ratio = districtRatioKnown
		ref = stateStats[referenceCrop]
	}

	seasonIdx := s.Index()
	if seasonIdx < 0 {
		seasonIdx = 0
	}

	const n, p, k = defaultNitrogen, defaultPhosphorus, defaultPotassium

	return FeatureVector{
		n,
		p,
		k,
		w.Temperature,
		w.Humidity,
		defaultPH,
		w.Rainfall,
		defaultSoilMoisture,
		defaultSunlight,
		w.WindSpeed,
		defaultCO2,
		defaultOrganicMatter,
		defaultIrrigation,
		defaultCropDensity,
		defaultPestPressure,
		defaultFertilizer,
		defaultUrbanProximity,
		defaultFrostRisk,
		defaultWaterEfficiency,
		ratio,
		ref.AvgYield,
		ref.YieldEfficiency,
		ref.YieldStd,
		float64(seasonIdx),
		defaultSoilType,
		defaultGrowthStage,
		defaultWaterSource,
		float64(n+p+k) / (defaultFertilizer + 1),
		float64(n) / (p + k + 1),
		w.Temperature * w.Humidity / 100,
		float64(PHCategory(defaultPH)),
		float64(RainfallCategory(w.Rainfall)),
		float64(TemperatureCategory(w.Temperature)),
	}
}

// PHCategory bins pH at 5.5, 6.5 and 7.5.
func PHCategory(v float64) int {
	return bin(v, 5.5, 6.5, 7.5)
}

// RainfallCategory bins rainfall (mm) at 300, 600 and 1200.
func RainfallCategory(v float64) int {
	return bin(v, 300, 600, 1200)
}

// TemperatureCategory bins temperature (°C) at 15, 25 and 35.
func TemperatureCategory(v float64) int {
	return bin(v, 15, 25, 35)
}

func bin(v float64, edges ...float64) int {
	for i, edge := range edges {
		if v < edge {
			return i
		}
	}
	return len(edges)
}

// Merge folds model probabilities into a knowledge-based ranking. A weight
// of zero, or an empty probability map, returns the list unchanged.
// Otherwise each crop the model knows is scored (1-w)*p + w*model, clamped
// to [0,1], re-bucketed and the list is re-sorted.
func Merge(recs []models.Recommendation, probs map[string]float64, weight float64) []models.Recommendation {
	if weight <= 0 || len(probs) == 0 || len(recs) == 0 {
		return recs
	}
	weight = math.Min(weight, 1)

	merged := make([]models.Recommendation, len(recs))
	copy(merged, recs)
	for i := range merged {
		mp, ok := probs[merged[i].Crop]
		if !ok {
			continue
		}
		score := (1-weight)*merged[i].Probability + weight*mp
		score = math.Max(0, math.Min(score, 1))
		merged[i].Probability = score
		merged[i].Confidence = models.ConfidenceFor(score)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Probability > merged[j].Probability
	})
	return merged
}
