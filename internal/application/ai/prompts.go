// Package ai adapts the external generative text service into the plan
// generation flow: it builds a constraint-rich prompt, invokes the service
// once, and parses the semi-structured response back into the day/meal
// structure. Anything it cannot use is reported to the caller, which falls
// back to the deterministic assembler.
package ai

import (
	"fmt"
	"strings"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/domain/recipe"
)

// BuildPlanPrompt assembles the text-generation prompt from the profile,
// the computed targets and a few example recipes that anchor the expected
// output format
func BuildPlanPrompt(p profile.Profile, calc nutrition.Calculation, examples []recipe.Recipe) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Create a %d-day meal plan with %d meals per day.\n\n", p.Days, p.MealsPerDay))

	prompt.WriteString("Profile:\n")
	prompt.WriteString(fmt.Sprintf("- Age %d, weight %.1f kg, height %.1f cm, sex %s\n", p.Age, p.WeightKg, p.HeightCm, p.Sex))
	prompt.WriteString(fmt.Sprintf("- Activity level: %s, goal: %s\n", p.Activity, p.Goal))

	prompt.WriteString("\nEnergy targets (already computed, do not recalculate):\n")
	prompt.WriteString(fmt.Sprintf("- BMR %.0f kcal, TDEE %.0f kcal, daily target %d kcal\n", calc.BMR, calc.TDEE, calc.DailyTarget))
	for _, t := range calc.SlotTargets {
		prompt.WriteString(fmt.Sprintf("- %s: %d kcal\n", t.Slot, t.Calories))
	}

	if len(p.Allergies) > 0 {
		prompt.WriteString("\nAllergies (exclude absolutely, no exceptions): ")
		prompt.WriteString(strings.Join(p.Allergies, ", "))
		prompt.WriteString("\n")
	}
	if len(p.Preferences) > 0 {
		prompt.WriteString("Preferred foods, prefer when possible: ")
		prompt.WriteString(strings.Join(p.Preferences, ", "))
		prompt.WriteString("\n")
	}

	prompt.WriteString("\nFormat every day exactly like this:\n")
	prompt.WriteString("Day 1\n")
	for _, t := range calc.SlotTargets {
		prompt.WriteString(fmt.Sprintf("%s: <meal name> | %d kcal\n", slotLabel(t.Slot), t.Calories))
		prompt.WriteString("Ingredients: <comma-separated list>\n")
		prompt.WriteString("Preparation: <one or two sentences>\n")
		prompt.WriteString("Macros: <n>g protein, <n>g carbs, <n>g fat\n")
	}

	if len(examples) > 0 {
		prompt.WriteString("\nExample recipes in the expected style:\n")
		for _, ex := range examples {
			prompt.WriteString(fmt.Sprintf("%s: %s | %d kcal\n", slotLabelForCategory(ex.Category), ex.Name, ex.Calories))
			prompt.WriteString("Ingredients: " + strings.Join(ex.Ingredients, ", ") + "\n")
			prompt.WriteString(fmt.Sprintf("Macros: %dg protein, %dg carbs, %dg fat\n", ex.Protein, ex.Carbs, ex.Fat))
		}
	}

	prompt.WriteString("\nRespond with the meal plan only, no commentary before or after.")

	return prompt.String()
}

// slotLabel renders a slot for the prompt and parser ("morning-snack" →
// "Morning Snack")
func slotLabel(s nutrition.Slot) string {
	words := strings.Split(string(s), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func slotLabelForCategory(c recipe.Category) string {
	switch c {
	case recipe.CategoryBreakfast:
		return "Breakfast"
	case recipe.CategoryLunch:
		return "Lunch"
	case recipe.CategoryDinner:
		return "Dinner"
	default:
		return "Snack"
	}
}
