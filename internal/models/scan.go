package models

// ScanResult is the normalized response of the image analysis service.
type ScanResult struct {
	MealName       string             `json:"mealName"`
	TotalNutrition NutritionInfo      `json:"totalNutrition"`
	DetectedFoods  []DetectedFoodItem `json:"detectedFoods"`
}
