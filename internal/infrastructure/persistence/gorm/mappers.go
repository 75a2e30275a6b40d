package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/recipe"
)

// toDomainRecipe converts a RecipeModel to a domain recipe
func toDomainRecipe(m RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:              m.ID,
		Name:            m.Name,
		Category:        recipe.Category(m.Category),
		DietTags:        []string(m.DietTags),
		AllergenTags:    []string(m.AllergenTags),
		Calories:        m.Calories,
		Protein:         m.Protein,
		Carbs:           m.Carbs,
		Fat:             m.Fat,
		PrepTimeMinutes: m.PrepTimeMinutes,
		Ingredients:     []string(m.Ingredients),
		Instructions:    m.Instructions,
		Rating:          m.Rating,
	}
}

// toRecipeModel converts a domain recipe to its persistence model
func toRecipeModel(r recipe.Recipe) RecipeModel {
	return RecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		Category:        string(r.Category),
		DietTags:        StringSlice(r.DietTags),
		AllergenTags:    StringSlice(r.AllergenTags),
		Calories:        r.Calories,
		Protein:         r.Protein,
		Carbs:           r.Carbs,
		Fat:             r.Fat,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Ingredients:     StringSlice(r.Ingredients),
		Instructions:    r.Instructions,
		Rating:          r.Rating,
	}
}

// toMealPlanModel converts a domain plan to its persistence model
func toMealPlanModel(p *plan.Plan) (MealPlanModel, error) {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return MealPlanModel{}, fmt.Errorf("failed to encode plan days: %w", err)
	}
	return MealPlanModel{
		ID:            p.ID,
		Source:        string(p.Source),
		Days:          JSONDoc(days),
		TotalCalories: p.Totals.Calories,
		TotalProtein:  p.Totals.Protein,
		TotalCarbs:    p.Totals.Carbs,
		TotalFat:      p.Totals.Fat,
		CreatedAt:     p.CreatedAt,
	}, nil
}

// toDomainPlan converts a MealPlanModel back to a domain plan
func toDomainPlan(m MealPlanModel) (*plan.Plan, error) {
	var days []plan.Day
	if len(m.Days) > 0 {
		if err := json.Unmarshal([]byte(m.Days), &days); err != nil {
			return nil, fmt.Errorf("failed to decode plan days: %w", err)
		}
	}
	return &plan.Plan{
		ID:   m.ID,
		Days: days,
		Totals: plan.Totals{
			Calories: m.TotalCalories,
			Protein:  m.TotalProtein,
			Carbs:    m.TotalCarbs,
			Fat:      m.TotalFat,
		},
		Source:    plan.Source(m.Source),
		CreatedAt: m.CreatedAt,
	}, nil
}
