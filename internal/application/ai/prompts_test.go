package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/test/testutils"
)

func TestBuildPlanPrompt(t *testing.T) {
	p := testutils.NewProfileBuilder().
		WithSchedule(3, 5).
		WithAllergies("gluten", "nuts").
		WithPreferences("chicken").
		Build()
	calc := nutrition.ComputeTargets(p)
	example := testutils.NewRecipeBuilder().
		WithName("Grilled Chicken Bowl").
		WithCategory(recipe.CategoryLunch).
		Build()

	prompt := BuildPlanPrompt(p, calc, []recipe.Recipe{example})

	assert.Contains(t, prompt, "Create a 5-day meal plan with 3 meals per day.")
	assert.Contains(t, prompt, "daily target")
	assert.Contains(t, prompt, "exclude absolutely")
	assert.Contains(t, prompt, "gluten, nuts")
	assert.Contains(t, prompt, "prefer when possible: chicken")
	assert.Contains(t, prompt, "Day 1")
	assert.Contains(t, prompt, "Macros: <n>g protein, <n>g carbs, <n>g fat")
	assert.Contains(t, prompt, "Lunch: Grilled Chicken Bowl | 450 kcal")
	assert.Contains(t, prompt, "meal plan only")
}

func TestBuildPlanPromptWithoutOptionalSections(t *testing.T) {
	p := testutils.NewProfileBuilder().Build()
	calc := nutrition.ComputeTargets(p)

	prompt := BuildPlanPrompt(p, calc, nil)

	assert.NotContains(t, prompt, "Allergies")
	assert.NotContains(t, prompt, "Preferred foods")
	assert.NotContains(t, prompt, "Example recipes")
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "Breakfast", slotLabel(nutrition.SlotBreakfast))
	assert.Equal(t, "Morning Snack", slotLabel(nutrition.SlotMorningSnack))
	assert.Equal(t, "Afternoon Snack", slotLabel(nutrition.SlotAfternoonSnack))
}
