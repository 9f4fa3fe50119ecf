package models

type StoreStats struct {
	Meals        int    `json:"meals"`
	WaterEntries int    `json:"waterEntries"`
	OldestMeal   *int64 `json:"oldestMeal"`
}

// SweepResult counts records physically removed by an expiry sweep.
type SweepResult struct {
	Meals        int `json:"meals"`
	WaterEntries int `json:"waterEntries"`
}

type DailyTotals struct {
	NutritionInfo
	Water float64 `json:"water"`
}

type WeeklySeries struct {
	WeekStart int64      `json:"weekStart"`
	Days      [7]string  `json:"days"`
	Calories  [7]float64 `json:"calories"`
	Water     [7]float64 `json:"water"`
}

type Progress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

type GoalProgress struct {
	Calories Progress `json:"calories"`
	Protein  Progress `json:"protein"`
	Carbs    Progress `json:"carbs"`
	Fat      Progress `json:"fat"`
	Water    Progress `json:"water"`
}
