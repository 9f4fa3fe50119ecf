package models

// NutritionInfo holds macro-nutrient totals. Calories are kcal, the rest grams.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (n NutritionInfo) Add(o NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

func (n NutritionInfo) Scale(factor float64) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fat:      n.Fat * factor,
	}
}

// PerGram divides every field by weight. A non-positive weight divides by one.
func (n NutritionInfo) PerGram(weight float64) NutritionInfo {
	if weight <= 0 {
		weight = 1
	}
	return n.Scale(1 / weight)
}

func (n NutritionInfo) IsZero() bool {
	return n == NutritionInfo{}
}

// NonNegative clamps negative fields to zero.
func (n NutritionInfo) NonNegative() NutritionInfo {
	return NutritionInfo{
		Calories: max(n.Calories, 0),
		Protein:  max(n.Protein, 0),
		Carbs:    max(n.Carbs, 0),
		Fat:      max(n.Fat, 0),
	}
}
