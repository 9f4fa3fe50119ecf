package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chicken() DetectedFoodItem {
	return NewDetectedFoodItem("Chicken", 100, NutritionInfo{Calories: 200, Protein: 20, Carbs: 10, Fat: 5}, 0.9, "", nil)
}

func TestDetectedFood_DensityFrozenAtCreation(t *testing.T) {
	item := chicken()
	assert.InDelta(t, 2.0, item.Density.Calories, 1e-9)
	assert.InDelta(t, 0.2, item.Density.Protein, 1e-9)
	assert.InDelta(t, 0.1, item.Density.Carbs, 1e-9)
	assert.InDelta(t, 0.05, item.Density.Fat, 1e-9)
}

func TestDetectedFood_WithWeight_Scales(t *testing.T) {
	item, err := chicken().WithWeight(150)
	require.NoError(t, err)

	assert.Equal(t, 150.0, item.WeightGrams)
	assert.InDelta(t, 300, item.Calories, 1e-9)
	assert.InDelta(t, 30, item.Protein, 1e-9)
	assert.InDelta(t, 15, item.Carbs, 1e-9)
	assert.InDelta(t, 7.5, item.Fat, 1e-9)
}

func TestDetectedFood_WithWeight_NoDriftAcrossEdits(t *testing.T) {
	item := chicken()
	var err error
	for _, w := range []float64{37, 513, 1, 999, 73, 150} {
		item, err = item.WithWeight(w)
		require.NoError(t, err)
	}
	assert.InDelta(t, 300, item.Calories, 1e-9)
	assert.InDelta(t, 7.5, item.Fat, 1e-9)
}

func TestDetectedFood_WithWeight_ProportionalToRatio(t *testing.T) {
	base := NewDetectedFoodItem("Rice", 80, NutritionInfo{Calories: 104, Protein: 2.2, Carbs: 22.4, Fat: 0.24}, 0.8, "", nil)
	scaled, err := base.WithWeight(200)
	require.NoError(t, err)

	ratio := 200.0 / 80.0
	assert.InDelta(t, base.Calories*ratio, scaled.Calories, 1e-9)
	assert.InDelta(t, base.Protein*ratio, scaled.Protein, 1e-9)
	assert.InDelta(t, base.Carbs*ratio, scaled.Carbs, 1e-9)
	assert.InDelta(t, base.Fat*ratio, scaled.Fat, 1e-9)
}

func TestDetectedFood_WithWeight_RejectsNonPositive(t *testing.T) {
	item := chicken()
	_, err := item.WithWeight(0)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, err = item.WithWeight(-10)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestDetectedFood_ZeroWeightDividesByOne(t *testing.T) {
	item := NewDetectedFoodItem("Sauce", 0, NutritionInfo{Calories: 50}, 0.5, "", nil)
	assert.Equal(t, 50.0, item.Density.Calories)
}

func TestDetectedFood_NegativeWeightTreatedAsZero(t *testing.T) {
	item := NewDetectedFoodItem("Soup", -100, NutritionInfo{Calories: 200, Protein: 4, Carbs: 40, Fat: 1}, 0.5, "", nil)
	assert.Equal(t, 0.0, item.WeightGrams)
	assert.Equal(t, NutritionInfo{Calories: 200, Protein: 4, Carbs: 40, Fat: 1}, item.Density)

	scaled, err := item.WithWeight(150)
	require.NoError(t, err)
	assert.Equal(t, NutritionInfo{Calories: 30000, Protein: 600, Carbs: 6000, Fat: 150}, scaled.NutritionInfo)
	assert.GreaterOrEqual(t, scaled.Calories, 0.0)
}

func TestNutritionInfo_PerGramNonPositiveWeight(t *testing.T) {
	n := NutritionInfo{Calories: 80, Fat: 2}
	assert.Equal(t, n, n.PerGram(0))
	assert.Equal(t, n, n.PerGram(-25))
}

func TestDetectedFood_InvalidBoundingBoxDropped(t *testing.T) {
	box := &BoundingBox{X1: 0.6, Y1: 0.1, X2: 0.2, Y2: 0.5}
	item := NewDetectedFoodItem("Egg", 50, NutritionInfo{}, 0.9, "", box)
	assert.Nil(t, item.BoundingBox)

	valid := &BoundingBox{X1: 0.1, Y1: 0.1, X2: 0.4, Y2: 0.5}
	item = NewDetectedFoodItem("Egg", 50, NutritionInfo{}, 0.9, "", valid)
	require.NotNil(t, item.BoundingBox)
	assert.Equal(t, *valid, *item.BoundingBox)
}

func TestBoundingBox_Valid(t *testing.T) {
	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"unit square", BoundingBox{0, 0, 1, 1}, true},
		{"inner", BoundingBox{0.2, 0.3, 0.4, 0.9}, true},
		{"out of range", BoundingBox{-0.1, 0, 0.5, 0.5}, false},
		{"beyond one", BoundingBox{0, 0, 1.2, 0.5}, false},
		{"degenerate x", BoundingBox{0.5, 0, 0.5, 1}, false},
		{"inverted y", BoundingBox{0, 0.8, 1, 0.2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.Valid())
		})
	}
}

func TestDetectedFood_ConfidenceClamped(t *testing.T) {
	assert.Equal(t, 1.0, NewDetectedFoodItem("A", 1, NutritionInfo{}, 1.7, "", nil).ConfidenceScore)
	assert.Equal(t, 0.0, NewDetectedFoodItem("A", 1, NutritionInfo{}, -0.2, "", nil).ConfidenceScore)
}

func TestDetectedFood_NegativeNutritionClamped(t *testing.T) {
	item := NewDetectedFoodItem("A", 10, NutritionInfo{Calories: -5, Protein: 1}, 0.5, "", nil)
	assert.Equal(t, 0.0, item.Calories)
	assert.Equal(t, 1.0, item.Protein)
}
