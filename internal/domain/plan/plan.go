// Package plan defines the meal plan produced by the generation engine:
// ordered days, slot assignments, aggregate totals and the per-request
// selection context used for rotation avoidance.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/recipe"
)

// Source tags how a plan was produced
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Meal is a recipe-like record assigned to a slot. Selected recipes are
// copied into it; AI-parsed meals have no recipe ID. Rescaling adjusts the
// copy, never the source recipe.
type Meal struct {
	Slot         nutrition.Slot `json:"slot"`
	RecipeID     uuid.UUID      `json:"recipe_id,omitempty"`
	Name         string         `json:"name"`
	Calories     int            `json:"calories"`
	Protein      int            `json:"protein"`
	Carbs        int            `json:"carbs"`
	Fat          int            `json:"fat"`
	Ingredients  []string       `json:"ingredients,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
}

// MealFromRecipe copies a recipe into a slot assignment
func MealFromRecipe(slot nutrition.Slot, r recipe.Recipe) Meal {
	ingredients := make([]string, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	return Meal{
		Slot:         slot,
		RecipeID:     r.ID,
		Name:         r.Name,
		Calories:     r.Calories,
		Protein:      r.Protein,
		Carbs:        r.Carbs,
		Fat:          r.Fat,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
	}
}

// Day holds one day's slot assignments in conventional meal order. A slot
// with no viable recipe is simply absent.
type Day struct {
	Number int    `json:"number"`
	Meals  []Meal `json:"meals"`
}

// SetMeal adds or replaces the assignment for a meal's slot, keeping slot
// keys unique and preserving insertion order
func (d *Day) SetMeal(m Meal) {
	for i := range d.Meals {
		if d.Meals[i].Slot == m.Slot {
			d.Meals[i] = m
			return
		}
	}
	d.Meals = append(d.Meals, m)
}

// Meal returns the assignment for a slot
func (d *Day) Meal(slot nutrition.Slot) (*Meal, bool) {
	for i := range d.Meals {
		if d.Meals[i].Slot == slot {
			return &d.Meals[i], true
		}
	}
	return nil, false
}

// TotalCalories sums the day's assigned calories
func (d *Day) TotalCalories() int {
	total := 0
	for _, m := range d.Meals {
		total += m.Calories
	}
	return total
}

// Totals aggregates macros across all slots and days
type Totals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Plan is one generated meal plan. Created fresh per request; persistence
// is delegated to an external collaborator.
type Plan struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Days      []Day     `json:"days"`
	Totals    Totals    `json:"totals"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// RecomputeTotals rebuilds the aggregate totals from the day entries
func (p *Plan) RecomputeTotals() {
	var t Totals
	for _, day := range p.Days {
		for _, m := range day.Meals {
			t.Calories += m.Calories
			t.Protein += m.Protein
			t.Carbs += m.Carbs
			t.Fat += m.Fat
		}
	}
	p.Totals = t
}

// IsEmpty reports whether no slot on any day received a meal
func (p *Plan) IsEmpty() bool {
	for _, day := range p.Days {
		if len(day.Meals) > 0 {
			return false
		}
	}
	return true
}
