// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/app"
	"github.com/tomtom215/cropwise/internal/models"
)

func newRecommendCmd(g *globalFlags) *cobra.Command {
	var req advisor.Request

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the best crops for a district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(a *app.App) error {
				res, err := a.Service.Recommend(cmd.Context(), req)
				if err != nil {
					return err
				}
				if g.jsonOut {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				return writeRecommendations(cmd.OutOrStdout(), res)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.State, "state", "", "state name (required)")
	f.StringVar(&req.District, "district", "", "district name (required)")
	f.StringVar(&req.Season, "season", "", "kharif, rabi_early, rabi_late, zaid or perennial (default: current)")
	f.IntVar(&req.TopK, "top-k", 0, "number of crops to return (default from config)")
	f.BoolVar(&req.DistrictNative, "native", false, "rank crops native to the district first")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("district")
	return cmd
}

func newNativeCmd(g *globalFlags) *cobra.Command {
	var req advisor.NativeRequest

	cmd := &cobra.Command{
		Use:   "native",
		Short: "List crops native to a district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(a *app.App) error {
				res, err := a.Service.NativeCrops(cmd.Context(), req)
				if err != nil {
					return err
				}
				if g.jsonOut {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				return writeList(cmd.OutOrStdout(),
					fmt.Sprintf("Native crops: %s / %s (%s)", res.District, res.State, res.Season),
					res.NativeCrops)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.State, "state", "", "state name (required)")
	f.StringVar(&req.District, "district", "", "district name (required)")
	f.StringVar(&req.Season, "season", "", "restrict to one season")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("district")
	return cmd
}

func newSeasonsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "Show the season calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withApp(cmd, func(a *app.App) error {
				current := a.Service.CurrentSeason()
				seasons := a.Service.ListSeasons()
				if g.jsonOut {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"current_season": current,
						"seasons":        seasons,
					})
				}
				return writeSeasons(cmd.OutOrStdout(), current, seasons)
			})
		},
	}
}

func newDistrictsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "districts [state]",
		Short: "List states, or the districts of one state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(a *app.App) error {
				if len(args) == 0 {
					states := a.Service.ListStates()
					if g.jsonOut {
						return writeJSON(cmd.OutOrStdout(), states)
					}
					return writeList(cmd.OutOrStdout(), "States", states)
				}
				districts := a.Service.ListDistricts(args[0])
				if g.jsonOut {
					return writeJSON(cmd.OutOrStdout(), districts)
				}
				return writeList(cmd.OutOrStdout(), "Districts of "+args[0], districts)
			})
		},
	}
}

func newCacheCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the native crop cache",
		Long: "Manage the native crop cache shared with the server.\n\n" +
			"The memory store is private to each process, so these commands refuse it.\n" +
			"Badger is locked by a running server; stop the server first. Redis can be\n" +
			"changed while the server runs.",
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Drop every memoized native crop list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withCacheApp(cmd, func(a *app.App) error {
				if err := a.Service.PurgeNative(cmd.Context()); err != nil {
					return fmt.Errorf("purge native cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "native cache purged (%s)\n", a.Service.Health().NativeStore)
				return nil
			})
		},
	}

	warm := &cobra.Command{
		Use:   "warm",
		Short: "Compute the all-season native list of every district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withCacheApp(cmd, func(a *app.App) error {
				n, err := a.Service.WarmNative(cmd.Context())
				if err != nil {
					return fmt.Errorf("warm native cache after %d districts: %w", n, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "warmed %d districts\n", n)
				return nil
			})
		},
	}

	var inv struct {
		state, district, season string
	}
	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Drop one memoized native crop list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sn models.Season
			if inv.season != "" {
				parsed, err := models.ParseSeason(inv.season)
				if err != nil {
					return err
				}
				sn = parsed
			}
			return g.withCacheApp(cmd, func(a *app.App) error {
				if err := a.Service.InvalidateNative(cmd.Context(), inv.state, inv.district, sn); err != nil {
					return fmt.Errorf("invalidate native cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "invalidated %s / %s\n", inv.district, inv.state)
				return nil
			})
		},
	}
	f := invalidate.Flags()
	f.StringVar(&inv.state, "state", "", "state name (required)")
	f.StringVar(&inv.district, "district", "", "district name (required)")
	f.StringVar(&inv.season, "season", "", "season entry to drop (default: the all-season entry)")
	_ = invalidate.MarkFlagRequired("state")
	_ = invalidate.MarkFlagRequired("district")

	cmd.AddCommand(purge, warm, invalidate)
	return cmd
}
