// Package nutrition computes energy targets from a normalized profile and
// distributes them across meal slots.
package nutrition

import "github.com/mealsmith/v1/internal/domain/recipe"

// Slot is a named meal position within a day
type Slot string

const (
	SlotBreakfast      Slot = "breakfast"
	SlotMorningSnack   Slot = "morning-snack"
	SlotLunch          Slot = "lunch"
	SlotAfternoonSnack Slot = "afternoon-snack"
	SlotDinner         Slot = "dinner"
	SlotEveningSnack   Slot = "evening-snack"
	SlotSupper         Slot = "supper"
)

// Category maps a slot to the recipe category it draws from
func (s Slot) Category() recipe.Category {
	switch s {
	case SlotBreakfast:
		return recipe.CategoryBreakfast
	case SlotLunch:
		return recipe.CategoryLunch
	case SlotDinner, SlotSupper:
		return recipe.CategoryDinner
	default:
		return recipe.CategorySnack
	}
}

// SlotShare assigns a slot its percentage of the daily calorie target
type SlotShare struct {
	Slot    Slot
	Percent int
}

// slotTables holds the fixed distribution heuristics keyed by slot count.
// Each table lists slots in conventional meal order and sums to 100. The
// percentages are configuration, not science; distribution_test.go pins
// the sums.
var slotTables = map[int][]SlotShare{
	2: {
		{SlotBreakfast, 45},
		{SlotDinner, 55},
	},
	3: {
		{SlotBreakfast, 30},
		{SlotLunch, 40},
		{SlotDinner, 30},
	},
	// the 10% snack is taken proportionally from the three main meals
	4: {
		{SlotBreakfast, 27},
		{SlotLunch, 36},
		{SlotAfternoonSnack, 10},
		{SlotDinner, 27},
	},
	5: {
		{SlotBreakfast, 25},
		{SlotMorningSnack, 10},
		{SlotLunch, 35},
		{SlotAfternoonSnack, 10},
		{SlotDinner, 20},
	},
	6: {
		{SlotBreakfast, 25},
		{SlotMorningSnack, 10},
		{SlotLunch, 30},
		{SlotAfternoonSnack, 10},
		{SlotDinner, 20},
		{SlotEveningSnack, 5},
	},
	7: {
		{SlotBreakfast, 20},
		{SlotMorningSnack, 10},
		{SlotLunch, 25},
		{SlotAfternoonSnack, 10},
		{SlotDinner, 20},
		{SlotEveningSnack, 10},
		{SlotSupper, 5},
	},
}

// SlotsFor returns the ordered slot names configured for a meal count.
// Counts outside 2..7 saturate to the nearest table.
func SlotsFor(meals int) []Slot {
	shares := sharesFor(meals)
	slots := make([]Slot, len(shares))
	for i, share := range shares {
		slots[i] = share.Slot
	}
	return slots
}

// SlotTarget is a slot's calorie allotment
type SlotTarget struct {
	Slot     Slot `json:"slot"`
	Calories int  `json:"calories"`
}

// Distribute splits a daily calorie target across the configured slots.
// Each slot rounds independently; residual rounding drift is absorbed by
// downstream rescaling.
func Distribute(dailyTarget, meals int) []SlotTarget {
	shares := sharesFor(meals)
	targets := make([]SlotTarget, len(shares))
	for i, share := range shares {
		targets[i] = SlotTarget{
			Slot:     share.Slot,
			Calories: int(float64(dailyTarget)*float64(share.Percent)/100 + 0.5),
		}
	}
	return targets
}

func sharesFor(meals int) []SlotShare {
	if meals < 2 {
		meals = 2
	}
	if meals > 7 {
		meals = 7
	}
	return slotTables[meals]
}
