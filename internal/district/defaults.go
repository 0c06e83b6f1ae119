// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package district

import "sort"

// Geographic centre of India.
const (
	CentroidLatitude  = 20.5937
	CentroidLongitude = 78.9629
)

var cityDefaults = map[string]map[string][2]float64{
	"Maharashtra":    {"Pune": {18.5204, 73.8567}, "Mumbai": {19.0760, 72.8777}},
	"Karnataka":      {"Bangalore": {12.9716, 77.5946}, "Mysore": {12.2958, 76.6394}},
	"Tamil Nadu":     {"Chennai": {13.0827, 80.2707}, "Coimbatore": {11.0168, 76.9558}},
	"Uttar Pradesh":  {"Lucknow": {26.8467, 80.9462}, "Kanpur": {26.4499, 80.3319}},
	"West Bengal":    {"Kolkata": {22.5726, 88.3639}, "Darjeeling": {27.0360, 88.2627}},
	"Chhattisgarh":   {"Raipur": {21.2514, 81.6296}, "Durg": {21.19, 81.2849}},
	"Madhya Pradesh": {"Bhopal": {23.2599, 77.4126}, "Indore": {22.7196, 75.8577}},
}

var defaultStates = []string{
	"Maharashtra", "Karnataka", "Tamil Nadu", "Uttar Pradesh", "West Bengal",
	"Punjab", "Haryana", "Rajasthan", "Gujarat", "Madhya Pradesh",
	"Andhra Pradesh", "Telangana", "Kerala", "Odisha", "Bihar",
	"Jharkhand", "Chhattisgarh", "Assam", "Himachal Pradesh", "Uttarakhand",
}

var defaultDistricts = map[string][]string{
	"Maharashtra":   {"Pune", "Mumbai", "Nagpur", "Nashik", "Aurangabad", "Solapur", "Ahmednagar"},
	"Karnataka":     {"Bangalore", "Mysore", "Hubli", "Mangalore", "Belgaum", "Gulbarga"},
	"Tamil Nadu":    {"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem", "Erode"},
	"Uttar Pradesh": {"Lucknow", "Kanpur", "Agra", "Varanasi", "Meerut", "Allahabad"},
	"West Bengal":   {"Kolkata", "Darjeeling", "Durgapur", "Siliguri", "Asansol"},
}

// DefaultStates returns the built-in sorted state list.
func DefaultStates() []string {
	out := append([]string(nil), defaultStates...)
	sort.Strings(out)
	return out
}

// DefaultDistricts returns built-in districts for a state, sorted. Unknown
// states get an empty list.
func DefaultDistricts(state string) []string {
	out := append([]string{}, defaultDistricts[state]...)
	sort.Strings(out)
	return out
}
