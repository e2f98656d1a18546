package persistence

import (
	"context"
	"fmt"

	"github.com/macrotrack/backend/internal/domain"
	"gorm.io/gorm"
)

// FoodEntryRepository is the gorm-backed logging store
type FoodEntryRepository struct {
	db *gorm.DB
}

// NewFoodEntryRepository creates a repository over db
func NewFoodEntryRepository(db *gorm.DB) *FoodEntryRepository {
	return &FoodEntryRepository{db: db}
}

// Create inserts a new entry and fills its ID
func (r *FoodEntryRepository) Create(ctx context.Context, entry *domain.FoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating food entry: %w", err)
	}
	return nil
}

// ListByDay returns a user's entries for one day in insertion order
func (r *FoodEntryRepository) ListByDay(ctx context.Context, userID uint, date string) ([]domain.FoodEntry, error) {
	entries := []domain.FoodEntry{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing food entries: %w", err)
	}
	return entries, nil
}

// ListByMeal returns a user's entries for one meal of one day
func (r *FoodEntryRepository) ListByMeal(ctx context.Context, userID uint, date string, meal domain.MealSlot) ([]domain.FoodEntry, error) {
	entries := []domain.FoodEntry{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND meal_type = ?", userID, date, meal).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing food entries by meal: %w", err)
	}
	return entries, nil
}

// Delete hard-deletes an entry, ErrNotFound when it does not exist
func (r *FoodEntryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.FoodEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting food entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("food item %d", id)
	}
	return nil
}
