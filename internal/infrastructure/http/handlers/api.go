// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/internal/ports/inbound"
	"github.com/mealsmith/v1/internal/ports/outbound"
	apperrors "github.com/mealsmith/v1/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	planService inbound.PlanService
	recipes     outbound.RecipeRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	planService inbound.PlanService,
	recipes outbound.RecipeRepository,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		planService: planService,
		recipes:     recipes,
		validate:    validator.New(),
		logger:      logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// GeneratePlanRequest is the wire form of a plan-generation request.
// Numeric profile fields are deliberately untyped: clients send numbers or
// strings (including comma decimals) and normalization sorts them out.
type GeneratePlanRequest struct {
	Age           interface{} `json:"age"`
	WeightKg      interface{} `json:"weight_kg"`
	HeightCm      interface{} `json:"height_cm"`
	Sex           string      `json:"sex"`
	Activity      string      `json:"activity"`
	Goal          string      `json:"goal"`
	MealsPerDay   interface{} `json:"meals_per_day"`
	Days          interface{} `json:"days"`
	Allergies     []string    `json:"allergies" validate:"max=32,dive,max=64"`
	Preferences   []string    `json:"preferences" validate:"max=32,dive,max=64"`
	DailyCalories int         `json:"daily_calories" validate:"omitempty,min=1"`
}

// GeneratePlanResponse carries the plan plus the calculation behind it
type GeneratePlanResponse struct {
	Plan        *plan.Plan            `json:"plan"`
	Calculation nutrition.Calculation `json:"calculation"`
	Source      plan.Source           `json:"source"`
}

// GeneratePlan handles POST /api/v1/plans
func (h *APIHandlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.NewBadRequestError("Invalid JSON body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	cmd := inbound.GeneratePlanCommand{
		Profile: profile.RawProfile{
			Age:         req.Age,
			WeightKg:    req.WeightKg,
			HeightCm:    req.HeightCm,
			Sex:         req.Sex,
			Activity:    req.Activity,
			Goal:        req.Goal,
			MealsPerDay: req.MealsPerDay,
			Days:        req.Days,
			Allergies:   req.Allergies,
			Preferences: req.Preferences,
		},
	}
	if req.DailyCalories > 0 {
		cmd.Override = &inbound.TargetOverride{DailyCalories: req.DailyCalories}
	}

	result, err := h.planService.GeneratePlan(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data: GeneratePlanResponse{
			Plan:        result.Plan,
			Calculation: result.Calculation,
			Source:      result.Source,
		},
		Message: "Meal plan generated successfully",
	})
}

// GetPlan handles GET /api/v1/plans/{id}
func (h *APIHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("Invalid plan ID"))
		return
	}

	p, err := h.planService.GetPlan(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    p,
		Message: "Meal plan retrieved successfully",
	})
}

// recipeResponse is the wire form of a recipe
type recipeResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DietTags        []string  `json:"diet_tags,omitempty"`
	AllergenTags    []string  `json:"allergen_tags,omitempty"`
	Calories        int       `json:"calories"`
	Protein         int       `json:"protein"`
	Carbs           int       `json:"carbs"`
	Fat             int       `json:"fat"`
	PrepTimeMinutes int       `json:"prep_time_minutes,omitempty"`
	Ingredients     []string  `json:"ingredients,omitempty"`
	Rating          float64   `json:"rating"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *APIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	filters := outbound.RecipeFilters{}

	if category := r.URL.Query().Get("category"); category != "" {
		c := recipe.Category(category)
		if err := c.Validate(); err != nil {
			h.writeError(w, apperrors.NewBadRequestError("Unknown recipe category"))
			return
		}
		filters.Category = c
	}
	if raw := r.URL.Query().Get("max_calories"); raw != "" {
		maxCalories, err := strconv.Atoi(raw)
		if err != nil || maxCalories < 1 {
			h.writeError(w, apperrors.NewBadRequestError("max_calories must be a positive integer"))
			return
		}
		filters.MaxCalories = maxCalories
	}
	if raw := r.URL.Query().Get("max_prep_time"); raw != "" {
		maxPrep, err := strconv.Atoi(raw)
		if err != nil || maxPrep < 1 {
			h.writeError(w, apperrors.NewBadRequestError("max_prep_time must be a positive integer"))
			return
		}
		filters.MaxPrepTimeMinutes = maxPrep
	}
	if diet := r.URL.Query()["diet_tag"]; len(diet) > 0 {
		filters.DietTagsAny = diet
	}
	if exclude := r.URL.Query()["exclude_allergen"]; len(exclude) > 0 {
		filters.AllergenTagsNone = exclude
	}

	found, err := h.recipes.Query(r.Context(), filters)
	if err != nil {
		h.writeError(w, err)
		return
	}

	responses := make([]recipeResponse, 0, len(found))
	for _, rec := range found {
		responses = append(responses, recipeResponse{
			ID:              rec.ID,
			Name:            rec.Name,
			Category:        string(rec.Category),
			DietTags:        rec.DietTags,
			AllergenTags:    rec.AllergenTags,
			Calories:        rec.Calories,
			Protein:         rec.Protein,
			Carbs:           rec.Carbs,
			Fat:             rec.Fat,
			PrepTimeMinutes: rec.PrepTimeMinutes,
			Ingredients:     rec.Ingredients,
			Rating:          rec.Rating,
		})
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    responses,
		Message: "Recipes retrieved successfully",
	})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
		Message: "Service is healthy",
	})
}

// writeError maps application errors onto HTTP responses
func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		h.logger.Error("Unhandled error", zap.Error(err))
		appErr = apperrors.NewInternalError("An unexpected error occurred").WithCause(err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    string(appErr.Code),
	})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
