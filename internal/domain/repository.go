package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
	GetFoodDetails(ctx context.Context, fdcID string) (*USDAFood, error)
}

// FoodEntryRepository persists logged food entries
type FoodEntryRepository interface {
	Create(ctx context.Context, entry *FoodEntry) error
	ListByDay(ctx context.Context, userID uint, date string) ([]FoodEntry, error)
	ListByMeal(ctx context.Context, userID uint, date string, meal MealSlot) ([]FoodEntry, error)
	Delete(ctx context.Context, id uint) error
}

// UserGoalRepository persists one goal record per user
type UserGoalRepository interface {
	FindByUser(ctx context.Context, userID uint) (*UserGoal, error)
	// CreateIfAbsent inserts goal unless the user already has one
	CreateIfAbsent(ctx context.Context, goal *UserGoal) error
	Upsert(ctx context.Context, goal *UserGoal) (*UserGoal, error)
	Update(ctx context.Context, goal *UserGoal) error
}

// WaterIntakeRepository persists daily water intake
type WaterIntakeRepository interface {
	Find(ctx context.Context, userID uint, date string) (*WaterIntake, error)
	FindByID(ctx context.Context, id uint) (*WaterIntake, error)
	// Upsert atomically inserts or updates the (userID, date) record.
	// A nil goal keeps the stored goal, or the default on insert
	Upsert(ctx context.Context, userID uint, date string, amount float64, goal *float64) (*WaterIntake, error)
}

// CuratedFoodRepository reads and writes the curated foods table
type CuratedFoodRepository interface {
	List(ctx context.Context) ([]CuratedFood, error)
	Search(ctx context.Context, query string, limit int) ([]CuratedFood, error)
	FindByID(ctx context.Context, id uint) (*CuratedFood, error)
	Create(ctx context.Context, food *CuratedFood) error
	// CreateBatch inserts all foods or none
	CreateBatch(ctx context.Context, foods []CuratedFood) error
}

// CustomFoodRepository reads and writes user-scoped custom foods
type CustomFoodRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]CustomFood, error)
	Search(ctx context.Context, userID uint, query string, limit int) ([]CustomFood, error)
	FindByID(ctx context.Context, userID, id uint) (*CustomFood, error)
	Create(ctx context.Context, food *CustomFood) error
	Delete(ctx context.Context, userID, id uint) error
}
