package plan

import (
	"math"

	"github.com/mealsmith/v1/internal/domain/plan"
)

// Rescale returns a copy of the plan whose per-day calorie sums match the
// target. Each day scales independently: factor = target / max(current, 1),
// applied to calories, protein, carbs and fat with per-field rounding.
// Small cross-field rounding drift is accepted. The input plan and the
// recipes it was built from are never mutated.
func Rescale(p *plan.Plan, targetDailyCalories int) *plan.Plan {
	scaled := &plan.Plan{
		ID:        p.ID,
		Days:      make([]plan.Day, len(p.Days)),
		Source:    p.Source,
		CreatedAt: p.CreatedAt,
	}

	for i, day := range p.Days {
		current := day.TotalCalories()
		factor := float64(targetDailyCalories) / math.Max(float64(current), 1)

		scaledDay := plan.Day{
			Number: day.Number,
			Meals:  make([]plan.Meal, len(day.Meals)),
		}
		for j, m := range day.Meals {
			scaledDay.Meals[j] = scaleMeal(m, factor)
		}
		scaled.Days[i] = scaledDay
	}

	scaled.RecomputeTotals()
	return scaled
}

func scaleMeal(m plan.Meal, factor float64) plan.Meal {
	ingredients := make([]string, len(m.Ingredients))
	copy(ingredients, m.Ingredients)

	out := m
	out.Ingredients = ingredients
	out.Calories = scaleInt(m.Calories, factor)
	out.Protein = scaleInt(m.Protein, factor)
	out.Carbs = scaleInt(m.Carbs, factor)
	out.Fat = scaleInt(m.Fat, factor)
	return out
}

func scaleInt(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}
