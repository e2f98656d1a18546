package domain

import "time"

// DateLayout is the calendar-day format used for every dated record
const DateLayout = "2006-01-02"

// MealSlot buckets logged entries within a day
type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
	MealSnack     MealSlot = "snack"
)

// MealSlots lists the meal slots in display order
var MealSlots = []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether m is one of the known meal slots
func (m MealSlot) Valid() bool {
	for _, slot := range MealSlots {
		if m == slot {
			return true
		}
	}
	return false
}

// ServingUnits are the units a quantity may be entered in. No conversion is
// performed between them: quantities are always read against the per-100 basis
var ServingUnits = []string{"g", "oz", "ml", "serving", "piece"}

// FoodEntry is a food logged by a user for a meal on a given day.
// Entries are never updated, only created and deleted
type FoodEntry struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index:idx_food_entries_user_date" json:"userId" validate:"required"`
	Date     string   `gorm:"type:varchar(10);not null;index:idx_food_entries_user_date" json:"date" validate:"required,datetime=2006-01-02"`
	MealType MealSlot `gorm:"type:varchar(16);not null" json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodName string   `gorm:"size:255;not null" json:"foodName" validate:"required,max=255"`
	Quantity float64  `gorm:"not null" json:"quantity" validate:"gt=0"`
	Unit     string   `gorm:"size:16;not null" json:"unit" validate:"required,oneof=g oz ml serving piece"`
	Calories float64  `gorm:"not null" json:"calories" validate:"gte=0"`
	Protein  float64  `gorm:"not null" json:"protein" validate:"gte=0"`
	Carbs    float64  `gorm:"not null" json:"carbs" validate:"gte=0"`
	Fat      float64  `gorm:"not null" json:"fat" validate:"gte=0"`
	// FdcID references the food the entry was computed from, when known
	FdcID     *string   `gorm:"size:64" json:"fdcId,omitempty" validate:"omitempty,max=64"`
	CreatedAt time.Time `json:"createdAt"`
}

// MacroTotals sums the four macros over a set of entries
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add accumulates a single entry
func (t *MacroTotals) Add(e FoodEntry) {
	t.Calories += e.Calories
	t.Protein += e.Protein
	t.Carbs += e.Carbs
	t.Fat += e.Fat
}
