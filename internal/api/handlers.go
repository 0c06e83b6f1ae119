// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/models"
	"github.com/tomtom215/cropwise/internal/validation"
)

// Handler serves the recommendation endpoints.
type Handler struct {
	svc *advisor.Service
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

// SeasonsResponse is the payload of GET /api/v1/seasons.
type SeasonsResponse struct {
	CurrentSeason models.Season       `json:"current_season"`
	Seasons       []models.SeasonInfo `json:"seasons"`
}

// StatesResponse is the payload of GET /api/v1/states.
type StatesResponse struct {
	States []string `json:"states"`
	Count  int      `json:"count"`
}

// DistrictsResponse is the payload of GET /api/v1/districts/{state}.
type DistrictsResponse struct {
	State     string   `json:"state"`
	Districts []string `json:"districts"`
	Count     int      `json:"count"`
}

// Predict handles POST /api/v1/predict.
//
// @Summary Recommend crops for a district
// @Description Ranks crops for the district and season from live weather, agronomic rules and historical yield. Season defaults to the current one.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body advisor.Request true "District, optional season and top_k (default 3)"
// @Success 200 {object} models.APIResponse{data=advisor.Result} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Validation error"
// @Failure 404 {object} models.APIResponse "Unknown district"
// @Failure 413 {object} models.APIResponse "Request body too large"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req advisor.Request
	if err := decodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}

	res, err := h.svc.Recommend(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, start, res)
}

// NativePost handles POST /api/v1/native.
//
// @Summary Native crops of a district
// @Description Returns the crops grown historically in the district that suit the season. Results are memoized in the native cache.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body advisor.NativeRequest true "District and optional season"
// @Success 200 {object} models.APIResponse{data=advisor.NativeResult} "Native crops"
// @Failure 400 {object} models.APIResponse "Validation error"
// @Failure 404 {object} models.APIResponse "Unknown district"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /native [post]
func (h *Handler) NativePost(w http.ResponseWriter, r *http.Request) {
	var req advisor.NativeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	h.native(w, r, req)
}

// NativeGet handles GET /api/v1/native?state=&district=&season=.
//
// @Summary Native crops of a district (query form)
// @Tags Recommendations
// @Produce json
// @Param state query string true "State name" example(Punjab)
// @Param district query string true "District name" example(Ludhiana)
// @Param season query string false "kharif, rabi_early, rabi_late, zaid or perennial"
// @Success 200 {object} models.APIResponse{data=advisor.NativeResult} "Native crops"
// @Failure 400 {object} models.APIResponse "Validation error"
// @Failure 404 {object} models.APIResponse "Unknown district"
// @Router /native [get]
func (h *Handler) NativeGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.native(w, r, advisor.NativeRequest{
		State:    q.Get("state"),
		District: q.Get("district"),
		Season:   q.Get("season"),
	})
}

func (h *Handler) native(w http.ResponseWriter, r *http.Request, req advisor.NativeRequest) {
	start := time.Now()
	res, err := h.svc.NativeCrops(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, start, res)
}

// PurgeNativeCache handles DELETE /api/v1/native/cache.
//
// @Summary Purge the native cache
// @Description Drops every memoized native crop list. Requires admin credentials.
// @Tags Admin
// @Security BasicAuth
// @Security BearerAuth
// @Success 204 "Cache purged"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 403 {object} models.APIResponse "Admin endpoints disabled"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /native/cache [delete]
func (h *Handler) PurgeNativeCache(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PurgeNative(r.Context()); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to purge native cache", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvalidateNativeCache handles
// DELETE /api/v1/native/cache/{state}/{district}?season=.
//
// @Summary Invalidate one native cache entry
// @Description Drops the memoized native list of a district. Without season the all-season entry is dropped. Requires admin credentials.
// @Tags Admin
// @Security BasicAuth
// @Security BearerAuth
// @Param state path string true "State name"
// @Param district path string true "District name"
// @Param season query string false "kharif, rabi_early, rabi_late, zaid or perennial"
// @Success 204 "Entry invalidated"
// @Failure 400 {object} models.APIResponse "Invalid season"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 403 {object} models.APIResponse "Admin endpoints disabled"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /native/cache/{state}/{district} [delete]
func (h *Handler) InvalidateNativeCache(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(chi.URLParam(r, "state"))
	districtName := strings.TrimSpace(chi.URLParam(r, "district"))

	var sn models.Season
	if raw := r.URL.Query().Get("season"); raw != "" {
		parsed, err := models.ParseSeason(raw)
		if err != nil {
			verr := validation.NewRequestValidationError("season", "season", err.Error(), raw)
			respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
			return
		}
		sn = parsed
	}

	if err := h.svc.InvalidateNative(r.Context(), state, districtName, sn); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to invalidate native cache entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Seasons handles GET /api/v1/seasons.
//
// @Summary List seasons
// @Tags Reference
// @Produce json
// @Success 200 {object} models.APIResponse{data=SeasonsResponse} "Season table and current season"
// @Router /seasons [get]
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, time.Now(), SeasonsResponse{
		CurrentSeason: h.svc.CurrentSeason(),
		Seasons:       h.svc.ListSeasons(),
	})
}

// States handles GET /api/v1/states.
//
// @Summary List states
// @Tags Reference
// @Produce json
// @Success 200 {object} models.APIResponse{data=StatesResponse} "Known states"
// @Router /states [get]
func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	states := h.svc.ListStates()
	respondData(w, r, time.Now(), StatesResponse{States: states, Count: len(states)})
}

// Districts handles GET /api/v1/districts/{state}.
//
// @Summary List districts of a state
// @Tags Reference
// @Produce json
// @Param state path string true "State name"
// @Success 200 {object} models.APIResponse{data=DistrictsResponse} "Districts, empty for an unknown state"
// @Router /districts/{state} [get]
func (h *Handler) Districts(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(chi.URLParam(r, "state"))
	districts := h.svc.ListDistricts(state)
	respondData(w, r, time.Now(), DistrictsResponse{
		State:     state,
		Districts: districts,
		Count:     len(districts),
	})
}

// Health handles GET /api/v1/health. A degraded service still answers 200;
// it serves fallback weather.
//
// @Summary Service health
// @Description Reports data-source availability. Status is degraded when the weather or model breaker is open.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=advisor.Health} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, time.Now(), h.svc.Health())
}

// NotFound answers unknown routes with the error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
