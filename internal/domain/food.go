package domain

import (
	"strings"
	"time"
)

// SourceTag identifies which food source produced a search result
type SourceTag string

const (
	SourceUSDA    SourceTag = "usda"
	SourceCurated SourceTag = "curated"
	SourceCustom  SourceTag = "custom"
)

// ID prefixes keep ids from different sources disjoint. USDA ids carry no prefix
const (
	CuratedIDPrefix = "indian-"
	CustomIDPrefix  = "custom-"
)

const (
	// InvalidFoodDescription marks a placeholder built from a record that could not be adapted
	InvalidFoodDescription = "Invalid food data"

	// UnknownFoodDescription is used when a source record has no name
	UnknownFoodDescription = "Unknown food"
)

// FoodSearchResult is the canonical record every food source is adapted into.
// Nutrient values are per 100 g or ml
type FoodSearchResult struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Nutrients   []NutrientValue `json:"nutrients"`
	SourceTag   SourceTag       `json:"sourceTag"`
	FoodGroup   string          `json:"foodGroup,omitempty"`
}

// NutrientValue returns the value of a canonical nutrient, 0 when absent
func (r FoodSearchResult) NutrientValue(id NutrientID) float64 {
	for _, n := range r.Nutrients {
		if n.NutrientID == id {
			return n.Value
		}
	}
	return 0
}

// IsPlaceholder reports whether the result stands in for malformed source data
func (r FoodSearchResult) IsPlaceholder() bool {
	return r.Description == InvalidFoodDescription && len(r.Nutrients) == 0
}

// InvalidFoodResult builds the placeholder returned for malformed source records
func InvalidFoodResult(id string, tag SourceTag) FoodSearchResult {
	if id == "" {
		id = string(tag) + "-invalid"
	}
	return FoodSearchResult{
		ID:          id,
		Description: InvalidFoodDescription,
		Nutrients:   []NutrientValue{},
		SourceTag:   tag,
	}
}

// ParseFoodID splits a canonical id into its source and the source-native id
func ParseFoodID(id string) (SourceTag, string) {
	switch {
	case strings.HasPrefix(id, CuratedIDPrefix):
		return SourceCurated, strings.TrimPrefix(id, CuratedIDPrefix)
	case strings.HasPrefix(id, CustomIDPrefix):
		return SourceCustom, strings.TrimPrefix(id, CustomIDPrefix)
	default:
		return SourceUSDA, id
	}
}

// FoodNutrients are the flat per-100-unit columns shared by curated and custom foods.
// A nil value means the record does not carry that nutrient
type FoodNutrients struct {
	Calories *float64 `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Protein  *float64 `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs,omitempty" validate:"omitempty,gte=0"`
	Fat      *float64 `json:"fat,omitempty" validate:"omitempty,gte=0"`
	Fiber    *float64 `json:"fiber,omitempty" validate:"omitempty,gte=0"`
	Calcium  *float64 `json:"calcium,omitempty" validate:"omitempty,gte=0"`
	Iron     *float64 `json:"iron,omitempty" validate:"omitempty,gte=0"`
}

// Profile converts the flat columns into a profile, missing values as 0
func (n FoodNutrients) Profile() NutrientProfile {
	return NutrientProfile{
		Calories: deref(n.Calories),
		Protein:  deref(n.Protein),
		Carbs:    deref(n.Carbs),
		Fat:      deref(n.Fat),
		Fiber:    deref(n.Fiber),
		Calcium:  deref(n.Calcium),
		Iron:     deref(n.Iron),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// CuratedFood is a row of the curated Indian foods table
type CuratedFood struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;index" json:"name" validate:"required,max=255"`
	FoodNutrients
	FoodGroup string    `gorm:"size:100" json:"foodGroup,omitempty" validate:"max=100"`
	FoodCode  string    `gorm:"size:50" json:"foodCode,omitempty" validate:"max=50"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the table name the curated dataset ships with
func (CuratedFood) TableName() string {
	return "indian_foods"
}

// CustomFood is a food defined by a single user and only visible to them
type CustomFood struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"userId" validate:"required"`
	Name   string `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	FoodNutrients
	FoodGroup string    `gorm:"size:100" json:"foodGroup,omitempty" validate:"max=100"`
	CreatedAt time.Time `json:"createdAt"`
}
