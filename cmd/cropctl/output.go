// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRecommendations(w io.Writer, res *advisor.Result) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s / %s - %s", res.District, res.State, res.Season)))
	wx := res.Weather
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"weather: %.1f°C, %.0f%% humidity, %.0f mm rain (location: %s)",
		wx.Temperature, wx.Humidity, wx.Rainfall, res.Location.Source)))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("Crop"),
		headerStyle.Render("Probability"),
		headerStyle.Render("Confidence"),
		headerStyle.Render("Reason"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 2), strings.Repeat("─", 12), strings.Repeat("─", 11),
		strings.Repeat("─", 10), strings.Repeat("─", 30))

	for i, r := range res.Recommendations {
		crop := r.Crop
		if r.DistrictNative != nil && *r.DistrictNative {
			crop += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\n", i+1, crop, r.Probability, r.Confidence, r.Suitability)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if res.ModelUsed {
		fmt.Fprintln(w, mutedStyle.Render("scores blended with the crop model"))
	}
	return nil
}

func writeSeasons(w io.Writer, current models.Season, seasons []models.SeasonInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Season"),
		headerStyle.Render("Months"),
		headerStyle.Render("Typical crops"),
		headerStyle.Render("Description"))
	for _, s := range seasons {
		name := string(s.Season)
		if s.Season == current {
			name += " (current)"
		}
		months := make([]string, len(s.Months))
		for i, m := range s.Months {
			months[i] = fmt.Sprint(m)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, strings.Join(months, ","), strings.Join(s.TypicalCrops, ", "), s.Description)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func writeList(w io.Writer, title string, items []string) error {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (none)"))
		return nil
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "  %s\n", it); err != nil {
			return err
		}
	}
	return nil
}
