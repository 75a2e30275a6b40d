// Package plan implements the meal-plan generation use case: recipe
// selection, deterministic assembly, rescaling and request orchestration.
package plan

import (
	"context"

	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/internal/ports/outbound"
)

// dietTagsByGoal maps each goal to the ordered list of acceptable diet
// tags. The lists are heuristics carried over from the original product
// configuration.
var dietTagsByGoal = map[profile.Goal][]string{
	profile.GoalWeightLoss:  {recipe.DietLowCarb, recipe.DietKetogenic, recipe.DietBalanced},
	profile.GoalMaintenance: {recipe.DietBalanced},
	profile.GoalMuscleGain:  {recipe.DietHighProtein, recipe.DietHighCalorie, recipe.DietBalanced},
}

// Selector picks one recipe per meal slot from the injected read-only
// collection, relaxing soft constraints step by step when nothing
// survives. Allergy exclusion is the one filter that is never relaxed.
type Selector struct {
	recipes outbound.RecipeRepository
	logger  *zap.Logger
}

// NewSelector creates a recipe selector
func NewSelector(recipes outbound.RecipeRepository, logger *zap.Logger) *Selector {
	return &Selector{
		recipes: recipes,
		logger:  logger.Named("selector"),
	}
}

// Select returns a recipe for the slot, or nil when the collection has no
// allergy-safe entries for the slot's category. The relaxation order is:
// preference boost first, rotation avoidance second, diet tags last.
func (s *Selector) Select(ctx context.Context, slot nutrition.Slot, p profile.Profile, sel *plan.SelectionContext) (*recipe.Recipe, error) {
	category := slot.Category()

	candidates, err := s.recipes.Query(ctx, outbound.RecipeFilters{
		Category:         category,
		DietTagsAny:      dietTagsByGoal[p.Goal],
		AllergenTagsNone: p.Allergies,
	})
	if err != nil {
		return nil, err
	}
	candidates = excludeAllergens(candidates, p.Allergies)

	if len(p.Preferences) > 0 {
		if preferred := filterPreferred(candidates, p.Preferences); len(preferred) > 0 {
			candidates = preferred
		}
	}

	if sel != nil {
		if fresh := filterUnused(candidates, sel); len(fresh) > 0 {
			candidates = fresh
		} else if len(candidates) > 0 {
			s.logger.Debug("rotation avoidance relaxed, all candidates already used",
				zap.String("slot", string(slot)))
		}
	}

	if len(candidates) == 0 {
		// last resort: category only, allergens still excluded
		candidates, err = s.recipes.Query(ctx, outbound.RecipeFilters{
			Category:         category,
			AllergenTagsNone: p.Allergies,
		})
		if err != nil {
			return nil, err
		}
		candidates = excludeAllergens(candidates, p.Allergies)
		if len(candidates) > 0 {
			s.logger.Debug("diet tag filter relaxed",
				zap.String("slot", string(slot)),
				zap.String("goal", string(p.Goal)))
		}
	}

	if len(candidates) == 0 {
		s.logger.Debug("no allergy-safe recipe for slot",
			zap.String("slot", string(slot)),
			zap.String("category", string(category)))
		return nil, nil
	}

	chosen := pickHighestRated(candidates)
	if sel != nil {
		sel.MarkUsed(chosen.ID)
	}
	return chosen, nil
}

// excludeAllergens enforces the hard allergy exclusion locally; the
// repository filter is an optimization, not the invariant's home
func excludeAllergens(candidates []recipe.Recipe, allergies []string) []recipe.Recipe {
	if len(allergies) == 0 {
		return candidates
	}
	out := candidates[:0:0]
	for _, r := range candidates {
		if !r.ContainsAnyAllergen(allergies) {
			out = append(out, r)
		}
	}
	return out
}

func filterPreferred(candidates []recipe.Recipe, preferences []string) []recipe.Recipe {
	var out []recipe.Recipe
	for _, r := range candidates {
		for _, token := range preferences {
			if r.MatchesPreference(token) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func filterUnused(candidates []recipe.Recipe, sel *plan.SelectionContext) []recipe.Recipe {
	var out []recipe.Recipe
	for _, r := range candidates {
		if !sel.IsUsed(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// pickHighestRated returns the best-rated candidate; ties keep the first
// in list order so selection stays deterministic
func pickHighestRated(candidates []recipe.Recipe) *recipe.Recipe {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Rating > candidates[best].Rating {
			best = i
		}
	}
	chosen := candidates[best]
	return &chosen
}
