package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/ports/outbound"
	apperrors "github.com/mealsmith/v1/pkg/errors"
)

// PlanRepository persists generated meal plans using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new GORM plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// Save stores a plan and returns its assigned id
func (r *PlanRepository) Save(ctx context.Context, p *plan.Plan) (uuid.UUID, error) {
	model, err := toMealPlanModel(p)
	if err != nil {
		return uuid.Nil, apperrors.NewDatabaseError("encode meal plan", err)
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return uuid.Nil, apperrors.NewDatabaseError("save meal plan", err)
	}

	return model.ID, nil
}

// FindByID returns a saved plan, nil when absent
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	var model MealPlanModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find meal plan", err)
	}

	return toDomainPlan(model)
}
