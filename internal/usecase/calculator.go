package usecase

import (
	"math"
	"slices"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
)

// ServingNutrition is the nutrition of one serving at full precision.
// Micro-nutrients are nil when the scaled value is not above zero
type ServingNutrition struct {
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Calcium  *float64 `json:"calcium,omitempty"`
	Iron     *float64 `json:"iron,omitempty"`
}

// DisplayServing is a serving rounded for presentation
type DisplayServing struct {
	Calories int      `json:"calories"`
	Protein  int      `json:"protein"`
	Carbs    int      `json:"carbs"`
	Fat      int      `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Calcium  *float64 `json:"calcium,omitempty"`
	Iron     *float64 `json:"iron,omitempty"`
}

// ComputeServing scales a per-100 result to quantity.
//
// The multiplier is quantity/100 whatever the unit: no conversion between
// g, oz, ml, serving and piece is attempted. An empty unit means grams
func ComputeServing(result domain.FoodSearchResult, quantity float64, unit string) (ServingNutrition, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return ServingNutrition{}, domain.Invalidf("quantity must be a non-negative number")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = "g"
	}
	if !slices.Contains(domain.ServingUnits, unit) {
		return ServingNutrition{}, domain.Invalidf("unit must be one of [%s]", strings.Join(domain.ServingUnits, " "))
	}

	multiplier := quantity / 100
	scaled := func(id domain.NutrientID) float64 {
		return result.NutrientValue(id) * multiplier
	}

	return ServingNutrition{
		Quantity: quantity,
		Unit:     unit,
		Calories: scaled(domain.NutrientCalories),
		Protein:  scaled(domain.NutrientProtein),
		Carbs:    scaled(domain.NutrientCarbs),
		Fat:      scaled(domain.NutrientFat),
		Fiber:    positive(scaled(domain.NutrientFiber)),
		Calcium:  positive(scaled(domain.NutrientCalcium)),
		Iron:     positive(scaled(domain.NutrientIron)),
	}, nil
}

func positive(v float64) *float64 {
	if v > 0 {
		return &v
	}
	return nil
}

// Rounded returns nearest-integer macros and one-decimal micros
func (s ServingNutrition) Rounded() DisplayServing {
	return DisplayServing{
		Calories: int(math.Round(s.Calories)),
		Protein:  int(math.Round(s.Protein)),
		Carbs:    int(math.Round(s.Carbs)),
		Fat:      int(math.Round(s.Fat)),
		Fiber:    roundOne(s.Fiber),
		Calcium:  roundOne(s.Calcium),
		Iron:     roundOne(s.Iron),
	}
}

func roundOne(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*10) / 10
	return &r
}
