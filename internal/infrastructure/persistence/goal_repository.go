package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/macrotrack/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserGoalRepository stores one goal row per user
type UserGoalRepository struct {
	db *gorm.DB
}

// NewUserGoalRepository creates a repository over db
func NewUserGoalRepository(db *gorm.DB) *UserGoalRepository {
	return &UserGoalRepository{db: db}
}

// FindByUser returns the user's goals or ErrNotFound
func (r *UserGoalRepository) FindByUser(ctx context.Context, userID uint) (*domain.UserGoal, error) {
	var goal domain.UserGoal
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundf("goals for user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("finding user goals: %w", err)
	}
	return &goal, nil
}

// CreateIfAbsent inserts goal; a concurrent insert for the same user is ignored
func (r *UserGoalRepository) CreateIfAbsent(ctx context.Context, goal *domain.UserGoal) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(goal).Error
	if err != nil {
		return fmt.Errorf("creating user goals: %w", err)
	}
	return nil
}

// Upsert writes all targets for the user, inserting the row if needed
func (r *UserGoalRepository) Upsert(ctx context.Context, goal *domain.UserGoal) (*domain.UserGoal, error) {
	row := *goal
	row.ID = 0
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fat", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upserting user goals: %w", err)
	}
	return r.FindByUser(ctx, goal.UserID)
}

// Update saves every field of an existing goal row
func (r *UserGoalRepository) Update(ctx context.Context, goal *domain.UserGoal) error {
	result := r.db.WithContext(ctx).
		Model(&domain.UserGoal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]any{
			"calories": goal.Calories,
			"protein":  goal.Protein,
			"carbs":    goal.Carbs,
			"fat":      goal.Fat,
		})
	if result.Error != nil {
		return fmt.Errorf("updating user goals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("goals for user %d", goal.UserID)
	}
	return nil
}
