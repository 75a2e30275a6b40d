package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/internal/ports/outbound"
)

// InMemoryRecipeRepository is a deterministic recipe repository backed by a
// slice. Query preserves insertion order after filtering, which makes
// tie-break assertions stable.
type InMemoryRecipeRepository struct {
	Recipes []recipe.Recipe

	// QueryErr, when set, is returned by every Query call
	QueryErr error
}

// NewInMemoryRecipeRepository creates a repository over the given recipes
func NewInMemoryRecipeRepository(recipes ...recipe.Recipe) *InMemoryRecipeRepository {
	return &InMemoryRecipeRepository{Recipes: recipes}
}

// Query filters the in-memory corpus
func (r *InMemoryRecipeRepository) Query(ctx context.Context, filters outbound.RecipeFilters) ([]recipe.Recipe, error) {
	if r.QueryErr != nil {
		return nil, r.QueryErr
	}

	var found []recipe.Recipe
	for _, rec := range r.Recipes {
		if filters.Category != "" && rec.Category != filters.Category {
			continue
		}
		if filters.MaxCalories > 0 && rec.Calories > filters.MaxCalories {
			continue
		}
		if filters.MaxPrepTimeMinutes > 0 && rec.PrepTimeMinutes > filters.MaxPrepTimeMinutes {
			continue
		}
		if len(filters.DietTagsAny) > 0 && !rec.HasAnyDietTag(filters.DietTagsAny) {
			continue
		}
		if rec.ContainsAnyAllergen(filters.AllergenTagsNone) {
			continue
		}
		found = append(found, rec)
	}
	return found, nil
}

// FindByID looks up a recipe by ID
func (r *InMemoryRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	for _, rec := range r.Recipes {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

// InMemoryPlanRepository stores plans in a map
type InMemoryPlanRepository struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*plan.Plan

	// SaveErr, when set, is returned by every Save call
	SaveErr error
}

// NewInMemoryPlanRepository creates an empty plan repository
func NewInMemoryPlanRepository() *InMemoryPlanRepository {
	return &InMemoryPlanRepository{plans: make(map[uuid.UUID]*plan.Plan)}
}

// Save stores the plan and returns its assigned ID
func (r *InMemoryPlanRepository) Save(ctx context.Context, p *plan.Plan) (uuid.UUID, error) {
	if r.SaveErr != nil {
		return uuid.Nil, r.SaveErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	stored := *p
	stored.ID = id
	r.plans[id] = &stored
	return id, nil
}

// FindByID returns the stored plan or nil
func (r *InMemoryPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	found := *p
	return &found, nil
}

// Len reports how many plans were saved
func (r *InMemoryPlanRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

// StubAIService returns a canned completion, or fails on demand
type StubAIService struct {
	Response  string
	Err       error
	HealthErr error

	// Calls counts Complete invocations
	Calls int
}

// Complete returns the canned response
func (s *StubAIService) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

// HealthCheck reports the configured health state
func (s *StubAIService) HealthCheck(ctx context.Context) error {
	return s.HealthErr
}

// ErrStubFailure is a generic failure for exercising error paths
var ErrStubFailure = errors.New("stub failure")
