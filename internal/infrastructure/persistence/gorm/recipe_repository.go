package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/internal/ports/outbound"
	apperrors "github.com/mealsmith/v1/pkg/errors"
)

// RecipeRepository implements the read-only recipe collection using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new GORM recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Query returns recipes matching the filters, best-rated first. Scalar
// filters run in SQL; tag filters run on the decoded rows so the same code
// serves sqlite and postgres.
func (r *RecipeRepository) Query(ctx context.Context, filters outbound.RecipeFilters) ([]recipe.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if filters.Category != "" {
		query = query.Where("category = ?", string(filters.Category))
	}
	if filters.MaxCalories > 0 {
		query = query.Where("calories <= ?", filters.MaxCalories)
	}
	if filters.MaxPrepTimeMinutes > 0 {
		query = query.Where("prep_time_minutes <= ?", filters.MaxPrepTimeMinutes)
	}

	var models []RecipeModel
	if err := query.Order("rating DESC, name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.NewDatabaseError("query recipes", err)
	}

	recipes := make([]recipe.Recipe, 0, len(models))
	for _, m := range models {
		rec := toDomainRecipe(m)
		if len(filters.DietTagsAny) > 0 && !rec.HasAnyDietTag(filters.DietTagsAny) {
			continue
		}
		if len(filters.AllergenTagsNone) > 0 && rec.ContainsAnyAllergen(filters.AllergenTagsNone) {
			continue
		}
		recipes = append(recipes, rec)
	}

	return recipes, nil
}

// FindByID returns a single recipe, nil when absent
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	rec := toDomainRecipe(model)
	return &rec, nil
}
