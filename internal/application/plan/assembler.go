package plan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
)

// Assembler builds a plan deterministically, one selector call per
// day-and-slot cell. It is the fallback used whenever the generative
// adapter cannot produce a usable result, and the only path when AI is
// disabled.
type Assembler struct {
	selector *Selector
	logger   *zap.Logger
	now      func() time.Time
}

// NewAssembler creates a plan assembler
func NewAssembler(selector *Selector, logger *zap.Logger) *Assembler {
	return &Assembler{
		selector: selector,
		logger:   logger.Named("assembler"),
		now:      time.Now,
	}
}

// Assemble iterates days and slots, attaching one recipe per cell. A slot
// with no viable recipe is left absent from that day; selector errors are
// logged and treated the same way so a single bad read never fails the
// whole plan.
func (a *Assembler) Assemble(ctx context.Context, p profile.Profile, calc nutrition.Calculation) *plan.Plan {
	slots := nutrition.SlotsFor(p.MealsPerDay)
	sel := plan.NewSelectionContext()

	result := &plan.Plan{
		Days:      make([]plan.Day, 0, p.Days),
		Source:    plan.SourceFallback,
		CreatedAt: a.now(),
	}

	for dayNum := 1; dayNum <= p.Days; dayNum++ {
		day := plan.Day{Number: dayNum}
		for _, slot := range slots {
			r, err := a.selector.Select(ctx, slot, p, sel)
			if err != nil {
				a.logger.Warn("recipe selection failed, slot skipped",
					zap.Int("day", dayNum),
					zap.String("slot", string(slot)),
					zap.Error(err))
				continue
			}
			if r == nil {
				continue
			}
			day.SetMeal(plan.MealFromRecipe(slot, *r))
		}
		result.Days = append(result.Days, day)
	}

	result.RecomputeTotals()
	return result
}
