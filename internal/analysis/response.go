package analysis

import (
	"bytes"
	"nutriscan/internal/models"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const defaultConfidence = 0.95

// flexNumber accepts JSON numbers and strings carrying units ("250 kcal").
// Anything unparsable decodes to zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = flexNumber(parseLoose(s))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		v = 0
	}
	*n = flexNumber(v)
	return nil
}

// parseLoose keeps digits and dots, then reads the longest numeric prefix.
func parseLoose(s string) float64 {
	var b strings.Builder
	dot := false
scan:
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if dot {
				break scan
			}
			dot = true
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0
	}
	return v
}

type rawBoundingBox struct {
	X1 flexNumber `json:"x1"`
	Y1 flexNumber `json:"y1"`
	X2 flexNumber `json:"x2"`
	Y2 flexNumber `json:"y2"`
}

type rawItem struct {
	Food                 string          `json:"food"`
	EstimatedWeightG     flexNumber      `json:"estimated_weight_g"`
	Calories             flexNumber      `json:"calories"`
	Protein              flexNumber      `json:"protein"`
	Carbs                flexNumber      `json:"carbs"`
	Fat                  flexNumber      `json:"fat"`
	Confidence           *flexNumber     `json:"confidence"`
	BoundingBox          *rawBoundingBox `json:"bounding_box"`
	AdjustmentSuggestion string          `json:"adjustment_suggestion"`
}

type rawResponse struct {
	MealName         string      `json:"meal_name"`
	TotalCalories    flexNumber  `json:"total_calories"`
	TotalProtein     flexNumber  `json:"total_protein"`
	TotalCarbs       flexNumber  `json:"total_carbs"`
	TotalFats        *flexNumber `json:"total_fats"`
	TotalFat         *flexNumber `json:"total_fat"`
	DetailedAnalysis []rawItem   `json:"detailed_analysis"`
}

func formatGrams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (i rawItem) toModel() models.DetectedFoodItem {
	weight := max(float64(i.EstimatedWeightG), 0)
	confidence := defaultConfidence
	if i.Confidence != nil {
		confidence = float64(*i.Confidence)
	}
	suggestion := i.AdjustmentSuggestion
	if suggestion == "" {
		suggestion = "Estimated portion: " + formatGrams(weight) + "g"
	}
	var box *models.BoundingBox
	if i.BoundingBox != nil {
		box = &models.BoundingBox{
			X1: float64(i.BoundingBox.X1),
			Y1: float64(i.BoundingBox.Y1),
			X2: float64(i.BoundingBox.X2),
			Y2: float64(i.BoundingBox.Y2),
		}
	}
	return models.NewDetectedFoodItem(strings.TrimSpace(i.Food), weight, models.NutritionInfo{
		Calories: float64(i.Calories),
		Protein:  float64(i.Protein),
		Carbs:    float64(i.Carbs),
		Fat:      float64(i.Fat),
	}, confidence, suggestion, box)
}

// decodeScanResult normalises the service payload into a ScanResult.
func decodeScanResult(body []byte) (*models.ScanResult, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrIncompleteData
	}

	fat := raw.TotalFats
	if fat == nil {
		fat = raw.TotalFat
	}
	result := &models.ScanResult{
		MealName: strings.TrimSpace(raw.MealName),
		TotalNutrition: models.NutritionInfo{
			Calories: float64(raw.TotalCalories),
			Protein:  float64(raw.TotalProtein),
			Carbs:    float64(raw.TotalCarbs),
		},
		DetectedFoods: make([]models.DetectedFoodItem, 0, len(raw.DetailedAnalysis)),
	}
	if fat != nil {
		result.TotalNutrition.Fat = float64(*fat)
	}
	result.TotalNutrition = result.TotalNutrition.NonNegative()

	names := make([]string, 0, len(raw.DetailedAnalysis))
	for _, item := range raw.DetailedAnalysis {
		food := item.toModel()
		result.DetectedFoods = append(result.DetectedFoods, food)
		if food.FoodName != "" {
			names = append(names, food.FoodName)
		}
	}
	if result.MealName == "" {
		result.MealName = strings.Join(names, " + ")
	}
	if result.MealName == "" {
		return nil, ErrIncompleteData
	}
	return result, nil
}
