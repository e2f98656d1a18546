package usda

import (
	"strconv"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// MapToSearchResult converts a FoodData Central food into the canonical search result.
// Values are passed through per 100 g; nutrients the food does not report become 0.
// A nil food, a missing FDC ID or a negative or non-finite value yields the invalid placeholder
func MapToSearchResult(food *domain.USDAFood) domain.FoodSearchResult {
	if food == nil {
		zap.L().Warn("usda adapter received nil food")
		return domain.InvalidFoodResult("", domain.SourceUSDA)
	}
	if food.FdcID <= 0 {
		zap.L().Warn("usda food without fdcId", zap.String("description", food.Description))
		return domain.InvalidFoodResult("", domain.SourceUSDA)
	}

	id := strconv.Itoa(food.FdcID)
	profile, ok := ExtractProfile(food.Nutrients)
	if !ok {
		zap.L().Warn("usda food has malformed nutrient values", zap.Int("fdcId", food.FdcID))
		return domain.InvalidFoodResult(id, domain.SourceUSDA)
	}

	description := strings.TrimSpace(food.Description)
	if description == "" {
		description = domain.UnknownFoodDescription
	}

	return domain.FoodSearchResult{
		ID:          id,
		Description: description,
		Nutrients:   profile.Values(),
		SourceTag:   domain.SourceUSDA,
		FoodGroup:   string(food.FoodCategory),
	}
}

// MapSearchResponse adapts every food of a search response, preserving upstream order
func MapSearchResponse(resp *domain.USDASearchResponse) []domain.FoodSearchResult {
	if resp == nil {
		return []domain.FoodSearchResult{}
	}
	results := make([]domain.FoodSearchResult, 0, len(resp.Foods))
	for i := range resp.Foods {
		results = append(results, MapToSearchResult(&resp.Foods[i]))
	}
	return results
}

// ExtractProfile picks the canonical nutrients out of a USDA nutrient list.
// It reports false when a canonical value is negative or not finite
func ExtractProfile(nutrients []domain.USDANutrient) (domain.NutrientProfile, bool) {
	byID := make(map[int]float64, len(nutrients))
	for _, n := range nutrients {
		id, value := n.Normalized()
		if id == 0 {
			continue
		}
		if _, seen := byID[id]; !seen {
			byID[id] = value
		}
	}

	var profile domain.NutrientProfile
	for _, def := range domain.NutrientTable {
		for _, usdaID := range def.USDAIDs {
			if value, ok := byID[usdaID]; ok {
				profile.Set(def.ID, value)
				break
			}
		}
	}

	if !profile.Valid() {
		return domain.NutrientProfile{}, false
	}
	return profile, true
}
