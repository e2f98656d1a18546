package usecase

import (
	"strconv"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// CuratedToSearchResult adapts a curated food row into the canonical result.
// It never fails; malformed rows become the invalid placeholder
func CuratedToSearchResult(food *domain.CuratedFood) domain.FoodSearchResult {
	if food == nil {
		zap.L().Warn("curated adapter received nil food")
		return domain.InvalidFoodResult("", domain.SourceCurated)
	}
	return flatToSearchResult(domain.SourceCurated, domain.CuratedIDPrefix, food.ID, food.Name, food.FoodNutrients, food.FoodGroup)
}

// CustomToSearchResult adapts a user's custom food into the canonical result
func CustomToSearchResult(food *domain.CustomFood) domain.FoodSearchResult {
	if food == nil {
		zap.L().Warn("custom adapter received nil food")
		return domain.InvalidFoodResult("", domain.SourceCustom)
	}
	return flatToSearchResult(domain.SourceCustom, domain.CustomIDPrefix, food.ID, food.Name, food.FoodNutrients, food.FoodGroup)
}

func flatToSearchResult(tag domain.SourceTag, prefix string, nativeID uint, name string, nutrients domain.FoodNutrients, group string) domain.FoodSearchResult {
	var id string
	if nativeID > 0 {
		id = prefix + strconv.FormatUint(uint64(nativeID), 10)
	}

	profile := nutrients.Profile()
	if id == "" || !profile.Valid() {
		zap.L().Warn("malformed food record",
			zap.String("source", string(tag)),
			zap.Uint("id", nativeID),
			zap.String("name", name))
		return domain.InvalidFoodResult(id, tag)
	}

	description := strings.TrimSpace(name)
	if description == "" {
		description = domain.UnknownFoodDescription
	}

	return domain.FoodSearchResult{
		ID:          id,
		Description: description,
		Nutrients:   profile.Values(),
		SourceTag:   tag,
		FoodGroup:   group,
	}
}

// CuratedToSearchResults adapts a slice of curated rows in order
func CuratedToSearchResults(foods []domain.CuratedFood) []domain.FoodSearchResult {
	results := make([]domain.FoodSearchResult, 0, len(foods))
	for i := range foods {
		results = append(results, CuratedToSearchResult(&foods[i]))
	}
	return results
}

// CustomToSearchResults adapts a slice of custom foods in order
func CustomToSearchResults(foods []domain.CustomFood) []domain.FoodSearchResult {
	results := make([]domain.FoodSearchResult, 0, len(foods))
	for i := range foods {
		results = append(results, CustomToSearchResult(&foods[i]))
	}
	return results
}
