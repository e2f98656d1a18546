package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/macrotrack/backend/internal/domain"
	"gorm.io/gorm"
)

const defaultSearchLimit = 20

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}

// CuratedFoodRepository reads and writes the curated foods table
type CuratedFoodRepository struct {
	db *gorm.DB
}

// NewCuratedFoodRepository creates a repository over db
func NewCuratedFoodRepository(db *gorm.DB) *CuratedFoodRepository {
	return &CuratedFoodRepository{db: db}
}

// List returns every curated food ordered by name
func (r *CuratedFoodRepository) List(ctx context.Context) ([]domain.CuratedFood, error) {
	foods := []domain.CuratedFood{}
	if err := r.db.WithContext(ctx).Order("name").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("listing curated foods: %w", err)
	}
	return foods, nil
}

// Search matches query as a case-insensitive substring of the name
func (r *CuratedFoodRepository) Search(ctx context.Context, query string, limit int) ([]domain.CuratedFood, error) {
	foods := []domain.CuratedFood{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(query)).
		Order("name").
		Limit(searchLimit(limit)).
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("searching curated foods: %w", err)
	}
	return foods, nil
}

// FindByID returns one curated food or ErrNotFound
func (r *CuratedFoodRepository) FindByID(ctx context.Context, id uint) (*domain.CuratedFood, error) {
	var food domain.CuratedFood
	err := r.db.WithContext(ctx).First(&food, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundf("indian food %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("finding curated food: %w", err)
	}
	return &food, nil
}

// Create inserts a curated food
func (r *CuratedFoodRepository) Create(ctx context.Context, food *domain.CuratedFood) error {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("creating curated food: %w", err)
	}
	return nil
}

// CreateBatch inserts all foods in a single transaction
func (r *CuratedFoodRepository) CreateBatch(ctx context.Context, foods []domain.CuratedFood) error {
	if len(foods) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(foods, 100).Error
	})
	if err != nil {
		return fmt.Errorf("creating curated foods batch: %w", err)
	}
	return nil
}

// CustomFoodRepository reads and writes user-scoped custom foods.
// Every query filters by user id
type CustomFoodRepository struct {
	db *gorm.DB
}

// NewCustomFoodRepository creates a repository over db
func NewCustomFoodRepository(db *gorm.DB) *CustomFoodRepository {
	return &CustomFoodRepository{db: db}
}

func (r *CustomFoodRepository) ListByUser(ctx context.Context, userID uint) ([]domain.CustomFood, error) {
	foods := []domain.CustomFood{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("listing custom foods: %w", err)
	}
	return foods, nil
}

func (r *CustomFoodRepository) Search(ctx context.Context, userID uint, query string, limit int) ([]domain.CustomFood, error) {
	foods := []domain.CustomFood{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(query)).
		Order("name").
		Limit(searchLimit(limit)).
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("searching custom foods: %w", err)
	}
	return foods, nil
}

func (r *CustomFoodRepository) FindByID(ctx context.Context, userID, id uint) (*domain.CustomFood, error) {
	var food domain.CustomFood
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&food, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundf("custom food %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("finding custom food: %w", err)
	}
	return &food, nil
}

func (r *CustomFoodRepository) Create(ctx context.Context, food *domain.CustomFood) error {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("creating custom food: %w", err)
	}
	return nil
}

func (r *CustomFoodRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CustomFood{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting custom food: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("custom food %d", id)
	}
	return nil
}
