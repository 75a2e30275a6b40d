// Package outbound defines the interfaces the engine consumes: the recipe
// collection, plan persistence, caching and the generative text service.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/recipe"
)

// RecipeFilters narrows a recipe collection query. Zero values disable a
// filter.
type RecipeFilters struct {
	Category           recipe.Category
	DietTagsAny        []string
	AllergenTagsNone   []string
	MaxCalories        int
	MaxPrepTimeMinutes int
}

// RecipeRepository is the read-only recipe collection
type RecipeRepository interface {
	Query(ctx context.Context, filters RecipeFilters) ([]recipe.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
}

// PlanRepository persists generated plans. Saves are opportunistic: a
// failed save is logged by the caller, never surfaced to the end user.
type PlanRepository interface {
	Save(ctx context.Context, p *plan.Plan) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
}

// CacheRepository defines caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
