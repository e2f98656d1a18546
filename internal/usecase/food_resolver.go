package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
	"github.com/macrotrack/backend/internal/infrastructure/usda"
)

// USDAFoodLookup is the part of the USDA proxy the resolver needs
type USDAFoodLookup interface {
	GetFood(ctx context.Context, fdcID string) (*domain.USDAFood, error)
}

// FoodResolver turns a canonical food id back into its search result.
// The id prefix picks the source; ids without one are USDA FDC ids
type FoodResolver struct {
	curated domain.CuratedFoodRepository
	custom  domain.CustomFoodRepository
	usda    USDAFoodLookup
}

func NewFoodResolver(curated domain.CuratedFoodRepository, custom domain.CustomFoodRepository, lookup USDAFoodLookup) *FoodResolver {
	return &FoodResolver{curated: curated, custom: custom, usda: lookup}
}

// Resolve returns the canonical result for foodID. Custom foods need the owning userID
func (r *FoodResolver) Resolve(ctx context.Context, foodID string, userID uint) (domain.FoodSearchResult, error) {
	foodID = strings.TrimSpace(foodID)
	if foodID == "" {
		return domain.FoodSearchResult{}, domain.Invalidf("foodId is required")
	}

	var result domain.FoodSearchResult
	tag, nativeID := domain.ParseFoodID(foodID)
	switch tag {
	case domain.SourceCurated:
		id, err := parseNativeID(nativeID)
		if err != nil {
			return domain.FoodSearchResult{}, err
		}
		food, err := r.curated.FindByID(ctx, id)
		if err != nil {
			return domain.FoodSearchResult{}, err
		}
		result = CuratedToSearchResult(food)
	case domain.SourceCustom:
		if userID == 0 {
			return domain.FoodSearchResult{}, domain.Invalidf("userId is required for custom foods")
		}
		id, err := parseNativeID(nativeID)
		if err != nil {
			return domain.FoodSearchResult{}, err
		}
		food, err := r.custom.FindByID(ctx, userID, id)
		if err != nil {
			return domain.FoodSearchResult{}, err
		}
		result = CustomToSearchResult(food)
	default:
		if r.usda == nil {
			return domain.FoodSearchResult{}, domain.ErrSourceDisabled
		}
		food, err := r.usda.GetFood(ctx, nativeID)
		if err != nil {
			return domain.FoodSearchResult{}, err
		}
		result = usda.MapToSearchResult(food)
	}

	if result.IsPlaceholder() {
		return domain.FoodSearchResult{}, domain.Invalidf("food %s has invalid nutrition data", foodID)
	}
	return result, nil
}

func parseNativeID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Invalidf("invalid food id %q", s)
	}
	return uint(id), nil
}

// ServingPreview is a resolved food with one serving computed
type ServingPreview struct {
	Food      domain.FoodSearchResult `json:"food"`
	Nutrition ServingNutrition        `json:"nutrition"`
	Display   DisplayServing          `json:"display"`
}

// Preview resolves foodID and computes the serving without logging it
func (r *FoodResolver) Preview(ctx context.Context, foodID string, userID uint, quantity float64, unit string) (*ServingPreview, error) {
	food, err := r.Resolve(ctx, foodID, userID)
	if err != nil {
		return nil, err
	}
	serving, err := ComputeServing(food, quantity, unit)
	if err != nil {
		return nil, err
	}
	return &ServingPreview{Food: food, Nutrition: serving, Display: serving.Rounded()}, nil
}
