package domain

import "time"

// DefaultWaterGoal is the daily water goal in ml when none was set
const DefaultWaterGoal = 2000.0

// WaterIntake is a user's cumulative water intake for one day.
// At most one record exists per (UserID, Date); the unique index enforces it
type WaterIntake struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_water_intakes_user_date" json:"userId"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_water_intakes_user_date" json:"date"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Goal      float64   `gorm:"not null" json:"goal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultWaterIntake is the zero-amount record reported for a day with no data.
// It is never persisted
func DefaultWaterIntake(userID uint, date string) WaterIntake {
	return WaterIntake{UserID: userID, Date: date, Amount: 0, Goal: DefaultWaterGoal}
}

// WaterUpsert sets the day's amount, and the goal when given
type WaterUpsert struct {
	UserID uint     `json:"userId" validate:"required"`
	Date   string   `json:"date" validate:"required,datetime=2006-01-02"`
	Amount float64  `json:"amount" validate:"gte=0"`
	Goal   *float64 `json:"goal,omitempty" validate:"omitempty,gt=0"`
}

// WaterPatch overrides fields of an existing record
type WaterPatch struct {
	Amount *float64 `json:"amount" validate:"omitempty,gte=0"`
	Goal   *float64 `json:"goal" validate:"omitempty,gt=0"`
}
