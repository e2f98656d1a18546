package usecase

import (
	"context"

	"github.com/macrotrack/backend/internal/domain"
	"github.com/macrotrack/backend/internal/infrastructure/usda"
)

// FoodSource is one searchable origin of foods, adapted to canonical results
type FoodSource interface {
	Tag() domain.SourceTag
	Search(ctx context.Context, query string, userID uint) ([]domain.FoodSearchResult, error)
}

// USDASearcher is the part of the USDA proxy a food source needs
type USDASearcher interface {
	SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error)
}

// USDASource searches FoodData Central through the cached proxy
type USDASource struct {
	searcher USDASearcher
}

func NewUSDASource(searcher USDASearcher) *USDASource {
	return &USDASource{searcher: searcher}
}

func (s *USDASource) Tag() domain.SourceTag { return domain.SourceUSDA }

func (s *USDASource) Search(ctx context.Context, query string, _ uint) ([]domain.FoodSearchResult, error) {
	resp, err := s.searcher.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	return usda.MapSearchResponse(resp), nil
}

// CuratedSource searches the curated foods table
type CuratedSource struct {
	repo  domain.CuratedFoodRepository
	limit int
}

func NewCuratedSource(repo domain.CuratedFoodRepository, limit int) *CuratedSource {
	return &CuratedSource{repo: repo, limit: limit}
}

func (s *CuratedSource) Tag() domain.SourceTag { return domain.SourceCurated }

func (s *CuratedSource) Search(ctx context.Context, query string, _ uint) ([]domain.FoodSearchResult, error) {
	foods, err := s.repo.Search(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}
	return CuratedToSearchResults(foods), nil
}

// CustomSource searches the requesting user's custom foods
type CustomSource struct {
	repo  domain.CustomFoodRepository
	limit int
}

func NewCustomSource(repo domain.CustomFoodRepository, limit int) *CustomSource {
	return &CustomSource{repo: repo, limit: limit}
}

func (s *CustomSource) Tag() domain.SourceTag { return domain.SourceCustom }

func (s *CustomSource) Search(ctx context.Context, query string, userID uint) ([]domain.FoodSearchResult, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required to search custom foods")
	}
	foods, err := s.repo.Search(ctx, userID, query, s.limit)
	if err != nil {
		return nil, err
	}
	return CustomToSearchResults(foods), nil
}
