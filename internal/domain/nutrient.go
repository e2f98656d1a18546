package domain

import "math"

// NutrientID is a canonical nutrient identifier. The numbering follows
// USDA FoodData Central so upstream data needs no translation
type NutrientID int

// Canonical nutrient ids
const (
	NutrientCalories NutrientID = 1008 // Energy (kcal)
	NutrientProtein  NutrientID = 1003 // Protein (g)
	NutrientCarbs    NutrientID = 1005 // Carbohydrate, by difference (g)
	NutrientFat      NutrientID = 1004 // Total lipid (fat) (g)
	NutrientFiber    NutrientID = 1079 // Fiber, total dietary (g)
	NutrientCalcium  NutrientID = 1087 // Calcium, Ca (mg)
	NutrientIron     NutrientID = 1089 // Iron, Fe (mg)
)

// NutrientDef describes one canonical nutrient and the keys used to find it in each source
type NutrientDef struct {
	ID   NutrientID
	Name string
	Unit string
	// USDAIDs lists FoodData Central nutrient ids, primary first. Aliases are
	// only consulted when the primary id is absent
	USDAIDs []int
}

// NutrientTable is the fixed set of canonical nutrients in output order
var NutrientTable = []NutrientDef{
	{ID: NutrientCalories, Name: "Energy", Unit: "KCAL", USDAIDs: []int{1008, 2047, 2048}},
	{ID: NutrientProtein, Name: "Protein", Unit: "G", USDAIDs: []int{1003}},
	{ID: NutrientCarbs, Name: "Carbohydrate, by difference", Unit: "G", USDAIDs: []int{1005, 1050}},
	{ID: NutrientFat, Name: "Total lipid (fat)", Unit: "G", USDAIDs: []int{1004, 1085}},
	{ID: NutrientFiber, Name: "Fiber, total dietary", Unit: "G", USDAIDs: []int{1079}},
	{ID: NutrientCalcium, Name: "Calcium, Ca", Unit: "MG", USDAIDs: []int{1087}},
	{ID: NutrientIron, Name: "Iron, Fe", Unit: "MG", USDAIDs: []int{1089}},
}

// NutrientValue is the wire shape of a single nutrient in a search result
type NutrientValue struct {
	NutrientID NutrientID `json:"nutrientId"`
	Name       string     `json:"nutrientName"`
	Unit       string     `json:"unitName"`
	Value      float64    `json:"value"`
}

// NutrientProfile holds one value per canonical nutrient, per 100 g or ml
type NutrientProfile struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Calcium  float64
	Iron     float64
}

// Get returns the value for a canonical nutrient, or 0 for an unknown id
func (p NutrientProfile) Get(id NutrientID) float64 {
	switch id {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientCarbs:
		return p.Carbs
	case NutrientFat:
		return p.Fat
	case NutrientFiber:
		return p.Fiber
	case NutrientCalcium:
		return p.Calcium
	case NutrientIron:
		return p.Iron
	}
	return 0
}

// Set stores a value for a canonical nutrient. It reports false for an unknown id
func (p *NutrientProfile) Set(id NutrientID, value float64) bool {
	switch id {
	case NutrientCalories:
		p.Calories = value
	case NutrientProtein:
		p.Protein = value
	case NutrientCarbs:
		p.Carbs = value
	case NutrientFat:
		p.Fat = value
	case NutrientFiber:
		p.Fiber = value
	case NutrientCalcium:
		p.Calcium = value
	case NutrientIron:
		p.Iron = value
	default:
		return false
	}
	return true
}

// Valid reports whether every value is finite and not negative
func (p NutrientProfile) Valid() bool {
	for _, def := range NutrientTable {
		v := p.Get(def.ID)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// Values renders the profile as the ordered wire list, one entry per canonical nutrient
func (p NutrientProfile) Values() []NutrientValue {
	values := make([]NutrientValue, 0, len(NutrientTable))
	for _, def := range NutrientTable {
		values = append(values, NutrientValue{
			NutrientID: def.ID,
			Name:       def.Name,
			Unit:       def.Unit,
			Value:      p.Get(def.ID),
		})
	}
	return values
}

// ProfileFromValues folds a wire list back into a profile. Unknown ids are ignored
func ProfileFromValues(values []NutrientValue) NutrientProfile {
	var p NutrientProfile
	for _, v := range values {
		p.Set(v.NutrientID, v.Value)
	}
	return p
}
