package usecase

import (
	"context"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// FoodLogService records what users eat
type FoodLogService struct {
	entries  domain.FoodEntryRepository
	resolver *FoodResolver
	goals    *GoalService
	water    *WaterService
	logger   *zap.Logger
}

func NewFoodLogService(
	entries domain.FoodEntryRepository,
	resolver *FoodResolver,
	goals *GoalService,
	water *WaterService,
	logger *zap.Logger,
) *FoodLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodLogService{
		entries:  entries,
		resolver: resolver,
		goals:    goals,
		water:    water,
		logger:   logger,
	}
}

// CreateEntry stores a validated entry. There is no duplicate check
func (s *FoodLogService) CreateEntry(ctx context.Context, entry *domain.FoodEntry) (*domain.FoodEntry, error) {
	if entry == nil {
		return nil, domain.Invalidf("food item is required")
	}
	entry.ID = 0
	if err := validateStruct(entry); err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FoodLogService) ListEntries(ctx context.Context, userID uint, date string) ([]domain.FoodEntry, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	return s.entries.ListByDay(ctx, userID, date)
}

func (s *FoodLogService) ListEntriesByMeal(ctx context.Context, userID uint, date string, meal domain.MealSlot) ([]domain.FoodEntry, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	if !meal.Valid() {
		return nil, domain.Invalidf("mealType must be one of [breakfast lunch dinner snack]")
	}
	return s.entries.ListByMeal(ctx, userID, date, meal)
}

func (s *FoodLogService) DeleteEntry(ctx context.Context, id uint) error {
	if id == 0 {
		return domain.Invalidf("id is required")
	}
	return s.entries.Delete(ctx, id)
}

// LogFromSearchRequest logs a serving of a food picked from search results
type LogFromSearchRequest struct {
	UserID   uint            `json:"userId" validate:"required"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	MealType domain.MealSlot `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodID   string          `json:"foodId" validate:"required,max=64"`
	Quantity float64         `json:"quantity" validate:"gt=0"`
	Unit     string          `json:"unit" validate:"omitempty,oneof=g oz ml serving piece"`
}

// LogFromSearch resolves the food, computes the serving and stores it at full precision
func (s *FoodLogService) LogFromSearch(ctx context.Context, req LogFromSearchRequest) (*domain.FoodEntry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	food, err := s.resolver.Resolve(ctx, req.FoodID, req.UserID)
	if err != nil {
		return nil, err
	}
	serving, err := ComputeServing(food, req.Quantity, req.Unit)
	if err != nil {
		return nil, err
	}

	foodID := food.ID
	entry := &domain.FoodEntry{
		UserID:   req.UserID,
		Date:     req.Date,
		MealType: req.MealType,
		FoodName: food.Description,
		Quantity: serving.Quantity,
		Unit:     serving.Unit,
		Calories: serving.Calories,
		Protein:  serving.Protein,
		Carbs:    serving.Carbs,
		Fat:      serving.Fat,
		FdcID:    &foodID,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("logged food from search",
		zap.Uint("userId", req.UserID),
		zap.String("foodId", foodID),
		zap.String("source", string(food.SourceTag)))
	return entry, nil
}

// MealSummary is one meal slot of a day
type MealSummary struct {
	MealType domain.MealSlot    `json:"mealType"`
	Entries  []domain.FoodEntry `json:"entries"`
	Totals   domain.MacroTotals `json:"totals"`
}

// DailySummary is a user's day: meals, totals, goals and water
type DailySummary struct {
	UserID    uint                `json:"userId"`
	Date      string              `json:"date"`
	Meals     []MealSummary       `json:"meals"`
	Totals    domain.MacroTotals  `json:"totals"`
	Goals     *domain.UserGoal    `json:"goals"`
	Remaining domain.MacroTotals  `json:"remaining"`
	Water     *domain.WaterIntake `json:"water"`
}

// DailySummary groups the day's entries by meal and compares totals with the goals
func (s *FoodLogService) DailySummary(ctx context.Context, userID uint, date string) (*DailySummary, error) {
	entries, err := s.ListEntries(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	water, err := s.water.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		UserID: userID,
		Date:   date,
		Meals:  make([]MealSummary, 0, len(domain.MealSlots)),
		Goals:  goals,
		Water:  water,
	}
	bySlot := make(map[domain.MealSlot]int, len(domain.MealSlots))
	for i, slot := range domain.MealSlots {
		summary.Meals = append(summary.Meals, MealSummary{MealType: slot, Entries: []domain.FoodEntry{}})
		bySlot[slot] = i
	}

	for _, e := range entries {
		summary.Totals.Add(e)
		if i, ok := bySlot[e.MealType]; ok {
			summary.Meals[i].Entries = append(summary.Meals[i].Entries, e)
			summary.Meals[i].Totals.Add(e)
		}
	}

	summary.Remaining = domain.MacroTotals{
		Calories: goals.Calories - summary.Totals.Calories,
		Protein:  goals.Protein - summary.Totals.Protein,
		Carbs:    goals.Carbs - summary.Totals.Carbs,
		Fat:      goals.Fat - summary.Totals.Fat,
	}
	return summary, nil
}
