package controllers

import (
	"math"
	"net/http"
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"nutriscan/internal/services"
	"strconv"
)

// ApiController serves the tracking surface: meals, water, goals and the
// aggregates computed from them.
type ApiController struct {
	logger providers.Logger
	store  services.LocalStoreInterface
	clock  services.Clock
}

func NewApiController(logger providers.Logger, store services.LocalStoreInterface, clock services.Clock) *ApiController {
	return &ApiController{
		logger: logger,
		store:  store,
		clock:  clock,
	}
}

type waterRequest struct {
	Amount int `json:"amount" validate:"required|min:1"`
}

type recommendedWaterResponse struct {
	WeightKg float64 `json:"weightKg"`
	Water    int     `json:"water"`
}

type onboardingResponse struct {
	Complete bool `json:"complete"`
}

func (ac *ApiController) GetMeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.store.GetMeals())
}

func (ac *ApiController) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, errBadRequest)
		return
	}
	ac.store.DeleteMeal(id)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetWaterLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.store.GetWaterLog())
}

func (ac *ApiController) AddWater(w http.ResponseWriter, r *http.Request) {
	var payload waterRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	entry, err := ac.store.AddWaterEntry(payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (ac *ApiController) ResetTodayWater(w http.ResponseWriter, r *http.Request) {
	removed := ac.store.ResetTodayWater()
	ac.logger.Infof(providers.TypeAPI, "Reset %d water entries for today", removed)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ac.store.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) DailyTotals(w http.ResponseWriter, r *http.Request) {
	totals := services.ComputeDailyTotals(ac.store.GetMeals(), ac.store.GetWaterLog(), ac.clock())
	writeJSON(w, http.StatusOK, totals)
}

func (ac *ApiController) WeeklySeries(w http.ResponseWriter, r *http.Request) {
	series := services.ComputeWeeklySeries(ac.store.GetMeals(), ac.store.GetWaterLog(), ac.clock())
	writeJSON(w, http.StatusOK, series)
}

func (ac *ApiController) GoalProgress(w http.ResponseWriter, r *http.Request) {
	totals := services.ComputeDailyTotals(ac.store.GetMeals(), ac.store.GetWaterLog(), ac.clock())
	writeJSON(w, http.StatusOK, services.ComputeGoalProgress(totals, ac.store.GetGoals()))
}

func (ac *ApiController) GetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.store.GetGoals())
}

func (ac *ApiController) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	var patch models.GoalsPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}
	goals, err := ac.store.UpdateGoals(patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (ac *ApiController) RecommendedWater(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		writeError(w, errBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, recommendedWaterResponse{
		WeightKg: weight,
		Water:    services.RecommendedWaterGoal(weight),
	})
}

func (ac *ApiController) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, onboardingResponse{Complete: ac.store.IsOnboardingComplete()})
}

func (ac *ApiController) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ac.store.CompleteOnboarding()
	writeJSON(w, http.StatusOK, onboardingResponse{Complete: true})
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.store.GetStats())
}
