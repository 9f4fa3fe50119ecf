package services

import (
	"math"
	"testing"
	"time"

	"nutriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

func mealAt(t time.Time, calories float64) models.MealRecord {
	return models.MealRecord{Nutrition: models.NutritionInfo{Calories: calories, Protein: 10}, Timestamp: t.UnixMilli()}
}

func waterAt(t time.Time, amount int) models.WaterLogEntry {
	return models.WaterLogEntry{Amount: amount, Timestamp: t.UnixMilli()}
}

func TestComputeDailyTotals_OnlyToday(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	meals := []models.MealRecord{
		mealAt(now.Add(-time.Hour), 300),
		mealAt(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), 500),
		mealAt(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), 900),
	}
	water := []models.WaterLogEntry{
		waterAt(now, 250),
		waterAt(now.Add(-10*time.Hour), 1000),
	}

	totals := ComputeDailyTotals(meals, water, now)
	assert.Equal(t, 800.0, totals.Calories)
	assert.Equal(t, 20.0, totals.Protein)
	assert.Equal(t, 250.0, totals.Water)
}

func TestComputeDailyTotals_UsesLocation(t *testing.T) {
	zone := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 3, 11, 1, 0, 0, 0, zone)
	// 23:30 local on the previous day, already the 11th in UTC
	late := time.Date(2026, 3, 10, 23, 30, 0, 0, zone)

	totals := ComputeDailyTotals([]models.MealRecord{mealAt(late, 400)}, nil, now)
	assert.Zero(t, totals.Calories)
}

func TestComputeDailyTotals_Empty(t *testing.T) {
	totals := ComputeDailyTotals(nil, nil, time.Now())
	assert.True(t, totals.IsZero())
	assert.Zero(t, totals.Water)
}

func TestComputeWeeklySeries_SundayStart(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	meals := []models.MealRecord{
		mealAt(sunday.Add(8*time.Hour), 400),
		mealAt(now, 600),
		mealAt(now.Add(-time.Hour), 100),
		mealAt(sunday.Add(-time.Minute), 999),
	}
	water := []models.WaterLogEntry{
		waterAt(now, 500),
		waterAt(sunday.AddDate(0, 0, 1), 250),
		waterAt(sunday.AddDate(0, 0, 7), 750),
	}

	series := ComputeWeeklySeries(meals, water, now)
	assert.Equal(t, sunday.UnixMilli(), series.WeekStart)
	assert.Equal(t, "Sun", series.Days[0])
	assert.Len(t, series.Water, 7)
	assert.Equal(t, [7]float64{400, 0, 0, 700, 0, 0, 0}, series.Calories)
	assert.Equal(t, [7]float64{0, 250, 0, 500, 0, 0, 0}, series.Water)
}

func TestComputeWeeklySeries_EmptyBucketsAreZero(t *testing.T) {
	series := ComputeWeeklySeries(nil, nil, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, [7]float64{}, series.Calories)
	assert.Equal(t, [7]float64{}, series.Water)
}

func TestComputeGoalProgress(t *testing.T) {
	totals := models.DailyTotals{
		NutritionInfo: models.NutritionInfo{Calories: 1250, Protein: 300, Carbs: 0, Fat: 35},
		Water:         1500,
	}
	goals := models.DailyGoals{Calories: 2500, Protein: 150, Carbs: 200, Fat: 0, Water: 3000}

	p := ComputeGoalProgress(totals, goals)
	assert.InDelta(t, 0.5, p.Calories.Percent, 1e-9)
	assert.Equal(t, 1.0, p.Protein.Percent)
	assert.Equal(t, 0.0, p.Carbs.Percent)
	assert.Equal(t, 0.0, p.Fat.Percent)
	assert.InDelta(t, 0.5, p.Water.Percent, 1e-9)
	assert.Equal(t, 300.0, p.Protein.Consumed)
	assert.Equal(t, 150.0, p.Protein.Goal)
}

func TestRecommendedWaterGoal(t *testing.T) {
	assert.Equal(t, 2625, RecommendedWaterGoal(75))
	assert.Equal(t, 2433, RecommendedWaterGoal(69.5))
	assert.Equal(t, 0, RecommendedWaterGoal(0))
	assert.Equal(t, 0, RecommendedWaterGoal(-60))
	assert.Equal(t, 0, RecommendedWaterGoal(math.NaN()))
	assert.Equal(t, 0, RecommendedWaterGoal(math.Inf(1)))
	assert.Equal(t, 0, RecommendedWaterGoal(math.Inf(-1)))
}
