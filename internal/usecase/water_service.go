package usecase

import (
	"context"
	"errors"

	"github.com/macrotrack/backend/internal/domain"
)

// WaterService tracks daily water intake
type WaterService struct {
	repo domain.WaterIntakeRepository
}

func NewWaterService(repo domain.WaterIntakeRepository) *WaterService {
	return &WaterService{repo: repo}
}

// Get returns the day's record, or an unsaved zero-amount default when there is none
func (s *WaterService) Get(ctx context.Context, userID uint, date string) (*domain.WaterIntake, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	rec, err := s.repo.Find(ctx, userID, date)
	if errors.Is(err, domain.ErrNotFound) {
		def := domain.DefaultWaterIntake(userID, date)
		return &def, nil
	}
	return rec, err
}

// Upsert sets the amount for the day, and the goal when given
func (s *WaterService) Upsert(ctx context.Context, req domain.WaterUpsert) (*domain.WaterIntake, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, req.UserID, req.Date, req.Amount, req.Goal)
}

// Patch overrides amount and/or goal on an existing record through the same upsert
func (s *WaterService) Patch(ctx context.Context, id uint, patch domain.WaterPatch) (*domain.WaterIntake, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amount := rec.Amount
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	goal := rec.Goal
	if patch.Goal != nil {
		goal = *patch.Goal
	}
	return s.repo.Upsert(ctx, rec.UserID, rec.Date, amount, &goal)
}
