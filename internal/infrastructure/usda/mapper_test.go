package usda

import (
	"math"
	"testing"

	"github.com/macrotrack/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToSearchResult(t *testing.T) {
	tests := []struct {
		name string
		food *domain.USDAFood
		want domain.NutrientProfile
	}{
		{
			name: "complete food data",
			food: &domain.USDAFood{
				FdcID:       12345,
				Description: "Whole Milk",
				Nutrients: []domain.USDANutrient{
					{NutrientID: 1008, NutrientName: "Energy", Value: 149.0, UnitName: "KCAL"},
					{NutrientID: 1003, NutrientName: "Protein", Value: 7.7, UnitName: "G"},
					{NutrientID: 1005, NutrientName: "Carbohydrate, by difference", Value: 11.7, UnitName: "G"},
					{NutrientID: 1004, NutrientName: "Total lipid (fat)", Value: 7.9, UnitName: "G"},
					{NutrientID: 1087, NutrientName: "Calcium, Ca", Value: 113, UnitName: "MG"},
					{NutrientID: 1253, NutrientName: "Cholesterol", Value: 24, UnitName: "MG"},
				},
			},
			want: domain.NutrientProfile{Calories: 149, Protein: 7.7, Carbs: 11.7, Fat: 7.9, Calcium: 113},
		},
		{
			name: "missing some nutrients",
			food: &domain.USDAFood{
				FdcID:       67890,
				Description: "Apple",
				Nutrients: []domain.USDANutrient{
					{NutrientID: 1008, Value: 52.0},
					{NutrientID: 1005, Value: 14.0},
				},
			},
			want: domain.NutrientProfile{Calories: 52, Carbs: 14},
		},
		{
			name: "no nutrients",
			food: &domain.USDAFood{
				FdcID:       11111,
				Description: "Unknown Food",
				Nutrients:   nil,
			},
			want: domain.NutrientProfile{},
		},
		{
			name: "atwater energy used when 1008 absent",
			food: &domain.USDAFood{
				FdcID:       22222,
				Description: "Kale, raw",
				Nutrients: []domain.USDANutrient{
					{NutrientID: 2047, Value: 43},
					{NutrientID: 2048, Value: 40},
				},
			},
			want: domain.NutrientProfile{Calories: 43},
		},
		{
			name: "primary id wins over alias",
			food: &domain.USDAFood{
				FdcID:       33333,
				Description: "Bread",
				Nutrients: []domain.USDANutrient{
					{NutrientID: 2047, Value: 260},
					{NutrientID: 1008, Value: 250},
				},
			},
			want: domain.NutrientProfile{Calories: 250},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapToSearchResult(tt.food)

			assert.Equal(t, domain.SourceUSDA, got.SourceTag)
			assert.Equal(t, tt.food.Description, got.Description)
			require.Len(t, got.Nutrients, len(domain.NutrientTable))
			assert.Equal(t, tt.want, domain.ProfileFromValues(got.Nutrients))
			for i, def := range domain.NutrientTable {
				assert.Equal(t, def.ID, got.Nutrients[i].NutrientID)
				assert.Equal(t, def.Unit, got.Nutrients[i].Unit)
			}
		})
	}
}

func TestMapToSearchResult_UsesFdcIDAsIs(t *testing.T) {
	got := MapToSearchResult(&domain.USDAFood{FdcID: 5, Description: "Rice"})
	assert.Equal(t, "5", got.ID)
}

func TestMapToSearchResult_DetailsShape(t *testing.T) {
	protein := 3.4
	got := MapToSearchResult(&domain.USDAFood{
		FdcID:        746782,
		Description:  "Milk, whole",
		FoodCategory: "Dairy and Egg Products",
		Nutrients: []domain.USDANutrient{
			{Nutrient: &domain.USDANutrientRef{ID: 1003, Name: "Protein", UnitName: "g"}, Amount: &protein},
		},
	})

	assert.Equal(t, 3.4, got.NutrientValue(domain.NutrientProtein))
	assert.Equal(t, "Dairy and Egg Products", got.FoodGroup)
}

func TestMapToSearchResult_EmptyDescription(t *testing.T) {
	got := MapToSearchResult(&domain.USDAFood{FdcID: 42, Description: "  "})
	assert.Equal(t, domain.UnknownFoodDescription, got.Description)
	assert.False(t, got.IsPlaceholder())
}

func TestMapToSearchResult_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		food   *domain.USDAFood
		wantID string
	}{
		{name: "nil food", food: nil, wantID: "usda-invalid"},
		{name: "missing fdcId", food: &domain.USDAFood{Description: "x"}, wantID: "usda-invalid"},
		{
			name: "negative value",
			food: &domain.USDAFood{FdcID: 7, Description: "x", Nutrients: []domain.USDANutrient{
				{NutrientID: 1003, Value: -1},
			}},
			wantID: "7",
		},
		{
			name: "NaN value",
			food: &domain.USDAFood{FdcID: 8, Description: "x", Nutrients: []domain.USDANutrient{
				{NutrientID: 1008, Value: math.NaN()},
			}},
			wantID: "8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got := MapToSearchResult(tt.food)
				assert.True(t, got.IsPlaceholder())
				assert.Equal(t, domain.InvalidFoodDescription, got.Description)
				assert.Empty(t, got.Nutrients)
				assert.Equal(t, tt.wantID, got.ID)
			})
		})
	}
}

func TestMapSearchResponse(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		got := MapSearchResponse(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("preserves upstream order", func(t *testing.T) {
		got := MapSearchResponse(&domain.USDASearchResponse{Foods: []domain.USDAFood{
			{FdcID: 3, Description: "c"},
			{FdcID: 1, Description: "a"},
			{FdcID: 2, Description: "b"},
		}})
		require.Len(t, got, 3)
		assert.Equal(t, "3", got[0].ID)
		assert.Equal(t, "1", got[1].ID)
		assert.Equal(t, "2", got[2].ID)
	})
}
