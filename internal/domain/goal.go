package domain

import "time"

// Defaults applied when a user's goals are first read
const (
	DefaultCalorieGoal = 2000.0
	DefaultProteinGoal = 120.0
	DefaultCarbsGoal   = 250.0
	DefaultFatGoal     = 65.0
)

// UserGoal holds a user's daily calorie and macro targets. One per user
type UserGoal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"userId" validate:"required"`
	Calories  float64   `gorm:"not null" json:"calories" validate:"gt=0"`
	Protein   float64   `gorm:"not null" json:"protein" validate:"gt=0"`
	Carbs     float64   `gorm:"not null" json:"carbs" validate:"gt=0"`
	Fat       float64   `gorm:"not null" json:"fat" validate:"gt=0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultUserGoal returns the goals a user starts with
func DefaultUserGoal(userID uint) UserGoal {
	return UserGoal{
		UserID:   userID,
		Calories: DefaultCalorieGoal,
		Protein:  DefaultProteinGoal,
		Carbs:    DefaultCarbsGoal,
		Fat:      DefaultFatGoal,
	}
}

// GoalPatch is a partial update; nil fields keep their stored value
type GoalPatch struct {
	Calories *float64 `json:"calories" validate:"omitempty,gt=0"`
	Protein  *float64 `json:"protein" validate:"omitempty,gt=0"`
	Carbs    *float64 `json:"carbs" validate:"omitempty,gt=0"`
	Fat      *float64 `json:"fat" validate:"omitempty,gt=0"`
}

// Apply merges the non-nil fields of p into g
func (g *UserGoal) Apply(p GoalPatch) {
	if p.Calories != nil {
		g.Calories = *p.Calories
	}
	if p.Protein != nil {
		g.Protein = *p.Protein
	}
	if p.Carbs != nil {
		g.Carbs = *p.Carbs
	}
	if p.Fat != nil {
		g.Fat = *p.Fat
	}
}
