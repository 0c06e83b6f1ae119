// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package season

import (
	"github.com/tomtom215/cropwise/internal/models"
)

var seasonInfo = map[models.Season]models.SeasonInfo{
	models.SeasonKharif: {
		Season:       models.SeasonKharif,
		Months:       []int{6, 7, 8, 9},
		Description:  "Monsoon season (Jun-Sep)",
		TypicalCrops: []string{"rice", "cotton", "sugarcane", "maize", "soybean", "groundnut", "pearl_millet"},
	},
	models.SeasonRabiEarly: {
		Season:       models.SeasonRabiEarly,
		Months:       []int{10, 11},
		Description:  "Early winter season (Oct-Nov)",
		TypicalCrops: []string{"wheat", "chickpea", "mustard", "barley", "peas", "lentil", "gram"},
	},
	models.SeasonRabiLate: {
		Season:       models.SeasonRabiLate,
		Months:       []int{12, 1, 2, 3},
		Description:  "Late winter season (Dec-Mar)",
		TypicalCrops: []string{"wheat", "chickpea", "mustard", "barley", "peas", "lentil", "gram", "onion", "garlic"},
	},
	models.SeasonZaid: {
		Season:       models.SeasonZaid,
		Months:       []int{4, 5},
		Description:  "Summer season (Apr-May)",
		TypicalCrops: []string{"watermelon", "muskmelon", "cucumber", "fodder_crops", "sunflower", "bitter_gourd", "okra"},
	},
	models.SeasonPerennial: {
		Season:       models.SeasonPerennial,
		Months:       []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Description:  "Year-round perennial crops",
		TypicalCrops: []string{"mango", "orange", "pomegranate", "banana", "papaya", "coconut", "apple", "guava", "lemon"},
	},
}

// Info returns the informational row for a season.
func Info(s models.Season) (models.SeasonInfo, bool) {
	info, ok := seasonInfo[s]
	return info, ok
}

// All returns the informational rows for every season in index order.
// Slices are copied so callers may not mutate the table.
func All() []models.SeasonInfo {
	out := make([]models.SeasonInfo, 0, len(seasonInfo))
	for _, s := range models.AllSeasons() {
		info := seasonInfo[s]
		info.Months = append([]int(nil), info.Months...)
		info.TypicalCrops = append([]string(nil), info.TypicalCrops...)
		out = append(out, info)
	}
	return out
}
