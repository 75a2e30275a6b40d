// Package recipe defines the read-only recipe reference data consumed by
// the meal-plan engine. Recipes are owned by an external collaborator: the
// engine selects them and, when rescaling, works on copies; it never
// mutates a Recipe.
package recipe

import (
	"strings"

	"github.com/google/uuid"
)

// Category classifies a recipe by the meal it is intended for
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategorySnack     Category = "snack"
)

// Validate checks if the category is valid
func (c Category) Validate() error {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack:
		return nil
	default:
		return ErrInvalidCategory
	}
}

// Diet tags recognized by goal-based filtering. The recipe corpus may carry
// additional tags; these are the ones the selector reasons about.
const (
	DietLowCarb     = "low-carb"
	DietKetogenic   = "ketogenic"
	DietBalanced    = "balanced"
	DietHighProtein = "high-protein"
	DietHighCalorie = "high-calorie"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
)

// Recipe is a single entry of the recipe collection
type Recipe struct {
	ID              uuid.UUID
	Name            string
	Category        Category
	DietTags        []string
	AllergenTags    []string
	Calories        int
	Protein         int
	Carbs           int
	Fat             int
	PrepTimeMinutes int
	Ingredients     []string
	Instructions    string
	Rating          float64
}

// ContainsAnyAllergen reports whether the recipe carries any of the given
// allergen tags. Matching is case-insensitive.
func (r Recipe) ContainsAnyAllergen(allergens []string) bool {
	if len(allergens) == 0 || len(r.AllergenTags) == 0 {
		return false
	}
	for _, tag := range r.AllergenTags {
		for _, allergen := range allergens {
			if strings.EqualFold(tag, allergen) {
				return true
			}
		}
	}
	return false
}

// HasAnyDietTag reports whether the recipe carries at least one of the
// given diet tags
func (r Recipe) HasAnyDietTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range r.DietTags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// MatchesPreference reports whether the recipe name or any ingredient
// contains the given free-text token (case-insensitive substring match)
func (r Recipe) MatchesPreference(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Name), token) {
		return true
	}
	for _, ingredient := range r.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), token) {
			return true
		}
	}
	return false
}
