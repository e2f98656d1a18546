package usecase

import (
	"context"
	"errors"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// GoalService manages per-user calorie and macro goals
type GoalService struct {
	repo   domain.UserGoalRepository
	logger *zap.Logger
}

func NewGoalService(repo domain.UserGoalRepository, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{repo: repo, logger: logger}
}

// GetOrCreate returns the user's goals, creating the defaults on first read
func (s *GoalService) GetOrCreate(ctx context.Context, userID uint) (*domain.UserGoal, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required")
	}

	goal, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	defaults := domain.DefaultUserGoal(userID)
	if err := s.repo.CreateIfAbsent(ctx, &defaults); err != nil {
		return nil, err
	}
	s.logger.Info("created default goals", zap.Uint("userId", userID))

	// Re-read: a concurrent request may have inserted first
	return s.repo.FindByUser(ctx, userID)
}

// Upsert replaces all of the user's goals
func (s *GoalService) Upsert(ctx context.Context, goal *domain.UserGoal) (*domain.UserGoal, error) {
	if goal == nil {
		return nil, domain.Invalidf("goal is required")
	}
	if err := validateStruct(goal); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, goal)
}

// Patch merges the given fields into existing goals. It does not create goals
func (s *GoalService) Patch(ctx context.Context, userID uint, patch domain.GoalPatch) (*domain.UserGoal, error) {
	if userID == 0 {
		return nil, domain.Invalidf("userId is required")
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	goal, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal.Apply(patch)
	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID)
}
