package models

import "errors"

var ErrInvalidWeight = errors.New("weight must be greater than zero")

// BoundingBox is a normalized rectangle on the analysed image.
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (b BoundingBox) Valid() bool {
	inUnit := func(v float64) bool { return v >= 0 && v <= 1 }
	return inUnit(b.X1) && inUnit(b.Y1) && inUnit(b.X2) && inUnit(b.Y2) &&
		b.X1 < b.X2 && b.Y1 < b.Y2
}

// DetectedFoodItem is one food recognised on a meal photo. The embedded
// NutritionInfo keeps calories and macros flat in the stored JSON.
//
// Density is the per-gram nutrition captured when the item was created. It is
// never recomputed, so WithWeight always scales from the original estimate.
type DetectedFoodItem struct {
	FoodName    string       `json:"foodName"`
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
	WeightGrams float64      `json:"weightGrams"`
	NutritionInfo
	ConfidenceScore      float64       `json:"confidenceScore"`
	AdjustmentSuggestion string        `json:"adjustmentSuggestion"`
	Density              NutritionInfo `json:"density"`
}

func NewDetectedFoodItem(name string, weightGrams float64, nutrition NutritionInfo, confidence float64, suggestion string, box *BoundingBox) DetectedFoodItem {
	if box != nil && !box.Valid() {
		box = nil
	}
	nutrition = nutrition.NonNegative()
	weightGrams = max(weightGrams, 0)
	return DetectedFoodItem{
		FoodName:             name,
		BoundingBox:          box,
		WeightGrams:          weightGrams,
		NutritionInfo:        nutrition,
		ConfidenceScore:      min(max(confidence, 0), 1),
		AdjustmentSuggestion: suggestion,
		Density:              nutrition.PerGram(weightGrams),
	}
}

// WithWeight returns a copy of the item rescaled to grams.
func (d DetectedFoodItem) WithWeight(grams float64) (DetectedFoodItem, error) {
	if grams <= 0 {
		return d, ErrInvalidWeight
	}
	d.WeightGrams = grams
	d.NutritionInfo = d.Density.Scale(grams)
	return d, nil
}

func SumNutrition(items []DetectedFoodItem) NutritionInfo {
	var total NutritionInfo
	for _, it := range items {
		total = total.Add(it.NutritionInfo)
	}
	return total
}
