package models

import (
	"errors"
	"slices"
)

var ErrItemNotFound = errors.New("detected food item not found")

// MealRecord is an analysed meal kept in the local store. Records are never
// mutated after they are stamped.
type MealRecord struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	ImageURL      string             `json:"imageUrl"`
	Nutrition     NutritionInfo      `json:"nutrition"`
	DetectedFoods []DetectedFoodItem `json:"detectedFoods,omitempty"`
	Timestamp     int64              `json:"timestamp"`
}

// MealCandidate is a meal that has not been stamped by the store yet.
type MealCandidate struct {
	Name          string             `json:"name"`
	ImageURL      string             `json:"imageUrl"`
	Nutrition     NutritionInfo      `json:"nutrition"`
	DetectedFoods []DetectedFoodItem `json:"detectedFoods,omitempty"`
}

// MealDraft is an analysis result under review before it becomes a meal.
type MealDraft struct {
	MealName       string             `json:"mealName"`
	ImageURL       string             `json:"imageUrl"`
	ReportedTotals NutritionInfo      `json:"reportedTotals"`
	DetectedFoods  []DetectedFoodItem `json:"detectedFoods"`
}

func NewMealDraft(result *ScanResult, imageURL string) *MealDraft {
	return &MealDraft{
		MealName:       result.MealName,
		ImageURL:       imageURL,
		ReportedTotals: result.TotalNutrition,
		DetectedFoods:  slices.Clone(result.DetectedFoods),
	}
}

// Totals is the sum over detected items, or the reported totals when the
// analysis returned no items.
func (d *MealDraft) Totals() NutritionInfo {
	if len(d.DetectedFoods) == 0 {
		return d.ReportedTotals
	}
	return SumNutrition(d.DetectedFoods)
}

func (d *MealDraft) AdjustWeight(index int, grams float64) error {
	if index < 0 || index >= len(d.DetectedFoods) {
		return ErrItemNotFound
	}
	item, err := d.DetectedFoods[index].WithWeight(grams)
	if err != nil {
		return err
	}
	d.DetectedFoods[index] = item
	return nil
}

func (d *MealDraft) Candidate() MealCandidate {
	return MealCandidate{
		Name:          d.MealName,
		ImageURL:      d.ImageURL,
		Nutrition:     d.Totals(),
		DetectedFoods: slices.Clone(d.DetectedFoods),
	}
}

func (d *MealDraft) Clone() *MealDraft {
	c := *d
	c.DetectedFoods = slices.Clone(d.DetectedFoods)
	return &c
}
