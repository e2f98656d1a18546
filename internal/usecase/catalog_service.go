package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// CatalogService manages the curated and custom food tables
type CatalogService struct {
	curated     domain.CuratedFoodRepository
	custom      domain.CustomFoodRepository
	searchLimit int
	logger      *zap.Logger
}

func NewCatalogService(curated domain.CuratedFoodRepository, custom domain.CustomFoodRepository, searchLimit int, logger *zap.Logger) *CatalogService {
	if searchLimit <= 0 {
		searchLimit = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{curated: curated, custom: custom, searchLimit: searchLimit, logger: logger}
}

func (s *CatalogService) ListCurated(ctx context.Context) ([]domain.CuratedFood, error) {
	return s.curated.List(ctx)
}

func (s *CatalogService) SearchCurated(ctx context.Context, query string) ([]domain.CuratedFood, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.Invalidf("query is required")
	}
	return s.curated.Search(ctx, query, s.searchLimit)
}

func (s *CatalogService) GetCurated(ctx context.Context, id uint) (*domain.CuratedFood, error) {
	return s.curated.FindByID(ctx, id)
}

func (s *CatalogService) CreateCurated(ctx context.Context, food *domain.CuratedFood) (*domain.CuratedFood, error) {
	if food == nil {
		return nil, domain.Invalidf("food is required")
	}
	food.ID = 0
	if err := validateStruct(food); err != nil {
		return nil, err
	}
	if err := s.curated.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

// CreateCuratedBatch validates every item before writing any. One invalid
// item rejects the whole batch
func (s *CatalogService) CreateCuratedBatch(ctx context.Context, foods []domain.CuratedFood) ([]domain.CuratedFood, error) {
	if len(foods) == 0 {
		return nil, domain.Invalidf("batch must contain at least one food")
	}
	for i := range foods {
		foods[i].ID = 0
		msg, err := validationMessage(&foods[i])
		if err != nil {
			return nil, err
		}
		if msg != "" {
			return nil, domain.Invalidf("item %d: %s", i+1, msg)
		}
	}

	if err := s.curated.CreateBatch(ctx, foods); err != nil {
		return nil, err
	}
	s.logger.Info("created curated foods", zap.Int("count", len(foods)))
	return foods, nil
}

func (s *CatalogService) ListCustom(ctx context.Context, userID uint) ([]domain.CustomFood, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required")
	}
	return s.custom.ListByUser(ctx, userID)
}

func (s *CatalogService) SearchCustom(ctx context.Context, userID uint, query string) ([]domain.CustomFood, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, domain.Invalidf("query is required")
	}
	return s.custom.Search(ctx, userID, query, s.searchLimit)
}

func (s *CatalogService) GetCustom(ctx context.Context, userID, id uint) (*domain.CustomFood, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required")
	}
	return s.custom.FindByID(ctx, userID, id)
}

func (s *CatalogService) CreateCustom(ctx context.Context, food *domain.CustomFood) (*domain.CustomFood, error) {
	if food == nil {
		return nil, domain.Invalidf("food is required")
	}
	food.ID = 0
	if err := validateStruct(food); err != nil {
		return nil, err
	}
	if err := s.custom.Create(ctx, food); err != nil {
		return nil, fmt.Errorf("saving custom food for user %d: %w", food.UserID, err)
	}
	return food, nil
}

func (s *CatalogService) DeleteCustom(ctx context.Context, userID, id uint) error {
	if userID == 0 {
		return domain.Invalidf("userId is required")
	}
	return s.custom.Delete(ctx, userID, id)
}
