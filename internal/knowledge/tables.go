// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package knowledge

import (
	"github.com/tomtom215/cropwise/internal/models"
)

var (
	rabiIdeal      = []string{"wheat", "chickpea", "mustard", "barley", "peas"}
	perennialIdeal = []string{"mango", "orange", "pomegranate", "banana", "papaya", "coconut", "apple"}
)

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Entries:        defaultEntries(),
		IdealRules:     defaultIdealRules(),
		SuitableRules:  defaultSuitableRules(),
		Reasons:        defaultReasons(),
		Regional:       defaultRegional(),
		Fallback:       defaultFallback(),
		DefaultWeather: models.WeatherSnapshot{Temperature: 25, Humidity: 60, Rainfall: 500, WindSpeed: 7, PrecipitationCurrent: 1, PrecipitationWeek: 10},
	}
}

func defaultEntries() map[models.Season]Entry {
	return map[models.Season]Entry{
		models.SeasonKharif: {
			Ideal:    []string{"rice", "cotton", "sugarcane", "maize", "soybean", "groundnut", "pearl_millet"},
			Suitable: []string{"bajra", "jowar", "tur", "urad", "moong", "guar", "sesame"},
			Conditions: ConditionEnvelope{
				Temperature: Between(25, 35),
				Rainfall:    AtLeast(500),
				Humidity:    AtLeast(70),
			},
		},
		models.SeasonRabiEarly: {
			Ideal:    append([]string(nil), rabiIdeal...),
			Suitable: []string{"lentil", "gram", "onion", "garlic"},
			Conditions: ConditionEnvelope{
				Temperature: Between(10, 20),
				Rainfall:    AtMost(300),
				Humidity:    AtMost(60),
			},
		},
		models.SeasonRabiLate: {
			Ideal:    append([]string(nil), rabiIdeal...),
			Suitable: []string{"lentil", "gram", "coriander", "fenugreek"},
			Conditions: ConditionEnvelope{
				Temperature: Between(15, 25),
				Rainfall:    AtMost(200),
				Humidity:    AtMost(50),
			},
		},
		models.SeasonZaid: {
			Ideal:    []string{"watermelon", "muskmelon", "cucumber", "fodder_crops", "sunflower"},
			Suitable: []string{"bitter_gourd", "bottle_gourd", "ridge_gourd", "okra", "tomato"},
			Conditions: ConditionEnvelope{
				Temperature: Between(30, 40),
				Rainfall:    AtMost(200),
				Humidity:    AtMost(50),
			},
		},
		models.SeasonPerennial: {
			Ideal:    append([]string(nil), perennialIdeal...),
			Suitable: []string{"guava", "lemon", "sapota", "jackfruit", "custard_apple"},
			Conditions: ConditionEnvelope{
				Temperature: Between(20, 35),
				Rainfall:    Between(750, 2500),
				Humidity:    Between(60, 80),
			},
		},
	}
}

// Ideal crops earn each predicate independently, up to +0.25.
// The zaid temperature rule has no upper limit, unlike its envelope.
func defaultIdealRules() map[models.Season][]Predicate {
	return map[models.Season][]Predicate{
		models.SeasonKharif: {
			{When: []Clause{{Temperature, Between(25, 35)}}, Bonus: 0.1},
			{When: []Clause{{Rainfall, AtLeast(500)}}, Bonus: 0.1},
			{When: []Clause{{Humidity, AtLeast(70)}}, Bonus: 0.05},
		},
		models.SeasonRabiEarly: {
			{When: []Clause{{Temperature, Between(10, 20)}}, Bonus: 0.1},
			{When: []Clause{{Rainfall, AtMost(300)}}, Bonus: 0.1},
			{When: []Clause{{Humidity, AtMost(60)}}, Bonus: 0.05},
		},
		models.SeasonRabiLate: {
			{When: []Clause{{Temperature, Between(15, 25)}}, Bonus: 0.1},
			{When: []Clause{{Rainfall, AtMost(200)}}, Bonus: 0.1},
			{When: []Clause{{Humidity, AtMost(50)}}, Bonus: 0.05},
		},
		models.SeasonZaid: {
			{When: []Clause{{Temperature, AtLeast(30)}}, Bonus: 0.1},
			{When: []Clause{{Rainfall, AtMost(200)}}, Bonus: 0.1},
			{When: []Clause{{Humidity, AtMost(50)}}, Bonus: 0.05},
		},
		models.SeasonPerennial: {
			{When: []Clause{{Temperature, Between(20, 35)}}, Bonus: 0.1},
			{When: []Clause{{Rainfall, Between(750, 2500)}}, Bonus: 0.1},
			{When: []Clause{{Humidity, Between(60, 80)}}, Bonus: 0.05},
		},
	}
}

// Suitable crops earn a single compound bonus.
func defaultSuitableRules() map[models.Season][]Predicate {
	return map[models.Season][]Predicate{
		models.SeasonKharif: {
			{When: []Clause{{Temperature, AtLeast(25)}, {Rainfall, AtLeast(500)}}, Bonus: 0.1},
		},
		models.SeasonRabiEarly: {
			{When: []Clause{{Temperature, Between(10, 20)}, {Rainfall, AtMost(300)}}, Bonus: 0.1},
		},
		models.SeasonRabiLate: {
			{When: []Clause{{Temperature, Between(15, 25)}, {Rainfall, AtMost(200)}}, Bonus: 0.1},
		},
		models.SeasonZaid: {
			{When: []Clause{{Temperature, AtLeast(30)}, {Rainfall, AtMost(200)}}, Bonus: 0.1},
		},
		models.SeasonPerennial: {
			{When: []Clause{{Temperature, Between(20, 35)}, {Rainfall, AtLeast(750)}}, Bonus: 0.1},
		},
	}
}

func defaultReasons() map[models.Season][]ReasonRule {
	return map[models.Season][]ReasonRule{
		models.SeasonKharif: {
			{Crops: []string{"rice", "cotton", "sugarcane", "maize"}, Text: "Ideal for monsoon season with current rainfall of {rainfall}mm"},
			{When: []Clause{{Humidity, Above(70)}}, Text: "High humidity favorable for growth"},
			{When: []Clause{{Temperature, Between(25, 35)}}, Text: "Temperature optimal for kharif crops"},
		},
		models.SeasonRabiEarly: {
			{IdealOnly: true, Text: "Perfect for early winter season with moderate temperature of {temperature}°C"},
			{When: []Clause{{Rainfall, Below(300)}}, Text: "Low rainfall suitable for early winter crops"},
			{When: []Clause{{Humidity, AtMost(60)}}, Text: "Moderate humidity favorable for rabi crops"},
		},
		models.SeasonRabiLate: {
			{IdealOnly: true, Text: "Perfect for late winter season with moderate temperature of {temperature}°C"},
			{When: []Clause{{Rainfall, Below(200)}}, Text: "Low rainfall suitable for late winter crops"},
			{When: []Clause{{Humidity, AtMost(50)}}, Text: "Lower humidity favorable for late rabi crops"},
		},
		models.SeasonZaid: {
			{Crops: []string{"watermelon", "muskmelon", "cucumber", "sunflower", "okra"}, Text: "Heat-tolerant crop suitable for summer temperature of {temperature}°C"},
			{When: []Clause{{Rainfall, Below(200)}}, Text: "Low rainfall suitable for zaid crops"},
		},
		models.SeasonPerennial: {
			{IdealOnly: true, Text: "Perennial crop suitable for year-round cultivation with current rainfall of {rainfall}mm"},
			{When: []Clause{{Temperature, Between(20, 35)}}, Text: "Temperature suitable for perennial fruit crops"},
			{When: []Clause{{Humidity, Between(60, 80)}}, Text: "Humidity optimal for perennial crops"},
		},
	}
}

func defaultRegional() []RegionalAffinity {
	return []RegionalAffinity{
		{State: "Maharashtra", Crops: []string{"cotton", "sugarcane", "soybean"}},
		{State: "Punjab", Crops: []string{"wheat", "rice"}},
		{State: "Karnataka", Crops: []string{"cotton", "sugarcane"}},
		{State: "Tamil Nadu", Crops: []string{"rice", "sugarcane"}},
		{State: "Uttar Pradesh", Crops: []string{"wheat", "rice", "sugarcane"}},
		{State: "Chhattisgarh", Crops: []string{"rice", "pearl_millet", "chickpea", "groundnut", "sugarcane"}},
		{State: "Madhya Pradesh", Crops: []string{"rice", "pearl_millet", "chickpea", "groundnut", "sugarcane"}},
	}
}

func defaultFallback() map[models.Season]models.WeatherSnapshot {
	return map[models.Season]models.WeatherSnapshot{
		models.SeasonKharif:    {Temperature: 28, Humidity: 80, Rainfall: 1200, WindSpeed: 8, PrecipitationCurrent: 5, PrecipitationWeek: 80},
		models.SeasonRabiEarly: {Temperature: 15, Humidity: 50, Rainfall: 200, WindSpeed: 6, PrecipitationCurrent: 0, PrecipitationWeek: 5},
		models.SeasonRabiLate:  {Temperature: 20, Humidity: 45, Rainfall: 100, WindSpeed: 5, PrecipitationCurrent: 0, PrecipitationWeek: 3},
		models.SeasonZaid:      {Temperature: 35, Humidity: 40, Rainfall: 50, WindSpeed: 12, PrecipitationCurrent: 0, PrecipitationWeek: 2},
		models.SeasonPerennial: {Temperature: 25, Humidity: 70, Rainfall: 800, WindSpeed: 7, PrecipitationCurrent: 2, PrecipitationWeek: 20},
	}
}
