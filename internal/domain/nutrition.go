package domain

import (
	"bytes"
	"encoding/json"
)

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID        int            `json:"fdcId"`
	Description  string         `json:"description"`
	DataType     string         `json:"dataType,omitempty"`
	BrandOwner   string         `json:"brandOwner,omitempty"`
	FoodCategory USDACategory   `json:"foodCategory,omitempty"`
	Nutrients    []USDANutrient `json:"foodNutrients"`
}

// USDACategory is the food category. Search results send it as a plain
// string, the details endpoint as an object with a description
type USDACategory string

// UnmarshalJSON accepts both encodings of the category
func (c *USDACategory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = USDACategory(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = USDACategory(obj.Description)
	return nil
}

// USDANutrient represents a single nutrient from USDA data.
// Search results fill the flat fields; food details nest them under Nutrient/Amount
type USDANutrient struct {
	NutrientID     int              `json:"nutrientId,omitempty"`
	NutrientName   string           `json:"nutrientName,omitempty"`
	NutrientNumber string           `json:"nutrientNumber,omitempty"`
	UnitName       string           `json:"unitName,omitempty"`
	Value          float64          `json:"value,omitempty"`
	Nutrient       *USDANutrientRef `json:"nutrient,omitempty"`
	Amount         *float64         `json:"amount,omitempty"`
}

// USDANutrientRef is the nested nutrient descriptor of the details endpoint
type USDANutrientRef struct {
	ID       int    `json:"id"`
	Number   string `json:"number,omitempty"`
	Name     string `json:"name,omitempty"`
	UnitName string `json:"unitName,omitempty"`
}

// Normalized returns the nutrient id and value whichever shape the nutrient came in
func (n USDANutrient) Normalized() (int, float64) {
	if n.NutrientID != 0 {
		return n.NutrientID, n.Value
	}
	if n.Nutrient != nil {
		if n.Amount != nil {
			return n.Nutrient.ID, *n.Amount
		}
		return n.Nutrient.ID, n.Value
	}
	return 0, n.Value
}

// USDASearchResponse represents the response from USDA search API
type USDASearchResponse struct {
	Foods       []USDAFood `json:"foods"`
	TotalHits   int        `json:"totalHits"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
