// Package inbound defines the use-case interfaces exposed by the engine
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
)

// TargetOverride bypasses the metabolic calculation for one request. The
// caller supplies the daily calorie target directly; distribution across
// slots still follows the configured tables.
type TargetOverride struct {
	DailyCalories int
}

// GeneratePlanCommand carries one plan-generation request
type GeneratePlanCommand struct {
	Profile  profile.RawProfile
	Override *TargetOverride
}

// GeneratePlanResult is the engine's response: the plan, the calculation
// behind it for transparency, and where the plan came from
type GeneratePlanResult struct {
	Plan        *plan.Plan
	Calculation nutrition.Calculation
	Source      plan.Source
}

// PlanService generates and retrieves meal plans
type PlanService interface {
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) (*GeneratePlanResult, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
}
