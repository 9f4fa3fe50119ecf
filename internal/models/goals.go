package models

import "errors"

var ErrInvalidGoal = errors.New("goal values must be greater than zero")

type DailyGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Water    float64 `json:"water"`
}

func DefaultGoals() DailyGoals {
	return DailyGoals{
		Calories: 2500,
		Protein:  150,
		Carbs:    200,
		Fat:      70,
		Water:    3000,
	}
}

// GoalsPatch is a partial goal update; nil fields keep their current value.
type GoalsPatch struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Water    *float64 `json:"water,omitempty"`
}

func (g DailyGoals) Apply(p GoalsPatch) (DailyGoals, error) {
	fields := []struct {
		src *float64
		dst *float64
	}{
		{p.Calories, &g.Calories},
		{p.Protein, &g.Protein},
		{p.Carbs, &g.Carbs},
		{p.Fat, &g.Fat},
		{p.Water, &g.Water},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if *f.src <= 0 {
			return g, ErrInvalidGoal
		}
		*f.dst = *f.src
	}
	return g, nil
}
