package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/macrotrack/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WaterIntakeRepository stores daily water intake, one row per (user, date)
type WaterIntakeRepository struct {
	db *gorm.DB
}

// NewWaterIntakeRepository creates a repository over db
func NewWaterIntakeRepository(db *gorm.DB) *WaterIntakeRepository {
	return &WaterIntakeRepository{db: db}
}

// Find returns the record for a user and day or ErrNotFound
func (r *WaterIntakeRepository) Find(ctx context.Context, userID uint, date string) (*domain.WaterIntake, error) {
	var rec domain.WaterIntake
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundf("water intake for user %d on %s", userID, date)
	}
	if err != nil {
		return nil, fmt.Errorf("finding water intake: %w", err)
	}
	return &rec, nil
}

// FindByID returns the record with the given id or ErrNotFound
func (r *WaterIntakeRepository) FindByID(ctx context.Context, id uint) (*domain.WaterIntake, error) {
	var rec domain.WaterIntake
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundf("water intake %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("finding water intake: %w", err)
	}
	return &rec, nil
}

// Upsert is a single INSERT ... ON CONFLICT (user_id, date) DO UPDATE, so two
// concurrent calls for the same day converge on one row. The stored row is read back
func (r *WaterIntakeRepository) Upsert(ctx context.Context, userID uint, date string, amount float64, goal *float64) (*domain.WaterIntake, error) {
	rec := domain.WaterIntake{
		UserID: userID,
		Date:   date,
		Amount: amount,
		Goal:   domain.DefaultWaterGoal,
	}
	updates := []string{"amount", "updated_at"}
	if goal != nil {
		rec.Goal = *goal
		updates = append(updates, "goal")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("upserting water intake: %w", err)
	}
	return r.Find(ctx, userID, date)
}
