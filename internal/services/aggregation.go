package services

import (
	"math"
	"nutriscan/internal/models"
	"time"
)

// WeekDayLabels are the short day names of a Sunday-first week.
var WeekDayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// waterPerKg is the recommended daily intake in ml per kg of body weight.
const waterPerKg = 35

// ComputeDailyTotals sums the meals and water logged on now's calendar day.
func ComputeDailyTotals(meals []models.MealRecord, water []models.WaterLogEntry, now time.Time) models.DailyTotals {
	from := startOfDay(now)
	to := from.AddDate(0, 0, 1)
	inDay := func(ts int64) bool {
		t := time.UnixMilli(ts)
		return !t.Before(from) && t.Before(to)
	}

	var totals models.DailyTotals
	for _, m := range meals {
		if inDay(m.Timestamp) {
			totals.NutritionInfo = totals.NutritionInfo.Add(m.Nutrition)
		}
	}
	for _, w := range water {
		if inDay(w.Timestamp) {
			totals.Water += float64(w.Amount)
		}
	}
	return totals
}

// ComputeWeeklySeries buckets calories and water into the Sunday-start week
// containing now. Entries outside that week are ignored.
func ComputeWeeklySeries(meals []models.MealRecord, water []models.WaterLogEntry, now time.Time) models.WeeklySeries {
	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	series := models.WeeklySeries{
		WeekStart: weekStart.UnixMilli(),
		Days:      WeekDayLabels,
	}

	bucket := func(ts int64) (int, bool) {
		t := time.UnixMilli(ts).In(now.Location())
		if t.Before(weekStart) || !t.Before(weekStart.AddDate(0, 0, 7)) {
			return 0, false
		}
		return int(t.Weekday()), true
	}

	for _, m := range meals {
		if i, ok := bucket(m.Timestamp); ok {
			series.Calories[i] += m.Nutrition.Calories
		}
	}
	for _, w := range water {
		if i, ok := bucket(w.Timestamp); ok {
			series.Water[i] += float64(w.Amount)
		}
	}
	return series
}

func progress(consumed, goal float64) models.Progress {
	p := models.Progress{Consumed: consumed, Goal: goal}
	if goal > 0 {
		p.Percent = min(max(consumed/goal, 0), 1)
	}
	return p
}

func ComputeGoalProgress(totals models.DailyTotals, goals models.DailyGoals) models.GoalProgress {
	return models.GoalProgress{
		Calories: progress(totals.Calories, goals.Calories),
		Protein:  progress(totals.Protein, goals.Protein),
		Carbs:    progress(totals.Carbs, goals.Carbs),
		Fat:      progress(totals.Fat, goals.Fat),
		Water:    progress(totals.Water, goals.Water),
	}
}

// RecommendedWaterGoal returns the daily water target in ml for a body weight.
// Non-finite and non-positive weights yield 0.
func RecommendedWaterGoal(weightKg float64) int {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 {
		return 0
	}
	return int(math.Round(weightKg * waterPerKg))
}
