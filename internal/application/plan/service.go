package plan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/ports/inbound"
	"github.com/mealsmith/v1/internal/ports/outbound"
	apperrors "github.com/mealsmith/v1/pkg/errors"
)

// Generator produces a plan from the generative text service. The service
// treats any error as "use the deterministic assembler instead".
type Generator interface {
	Generate(ctx context.Context, p profile.Profile, calc nutrition.Calculation) (*plan.Plan, error)
}

// Service orchestrates one plan-generation request end to end
type Service struct {
	assembler *Assembler
	generator Generator
	plans     outbound.PlanRepository
	cache     outbound.CacheRepository
	logger    *zap.Logger
	aiEnabled bool
}

// NewService creates the plan service. The generator and cache are
// optional; plan persistence is opportunistic and its failures never
// surface to the caller.
func NewService(
	assembler *Assembler,
	generator Generator,
	plans outbound.PlanRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
	aiEnabled bool,
) *Service {
	return &Service{
		assembler: assembler,
		generator: generator,
		plans:     plans,
		cache:     cache,
		logger:    logger.Named("plan-service"),
		aiEnabled: aiEnabled,
	}
}

var _ inbound.PlanService = (*Service)(nil)

// GeneratePlan runs the full pipeline: normalize, compute targets, gate on
// safety, generate (AI with deterministic fallback), rescale AI output to
// the authoritative target, save opportunistically.
func (s *Service) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*inbound.GeneratePlanResult, error) {
	p, notes := profile.Normalize(cmd.Profile)

	var calc nutrition.Calculation
	if cmd.Override != nil {
		calc = nutrition.ManualCalculation(cmd.Override.DailyCalories, p.MealsPerDay)
	} else {
		calc = nutrition.ComputeTargets(p)
	}
	calc.Trace.Notes = append(notes, calc.Trace.Notes...)

	if !calc.Safe {
		s.logger.Warn("calculation outside safe bounds, request aborted",
			zap.Float64("bmr", calc.BMR),
			zap.Float64("tdee", calc.TDEE),
			zap.Int("daily_target", calc.DailyTarget))
		return nil, apperrors.NewUnsafeCalculationError(calc.BMR, calc.TDEE, calc.DailyTarget)
	}

	result := s.generate(ctx, p, calc)

	if result.IsEmpty() {
		s.logger.Warn("generated plan has no populated slots",
			zap.Int("days", p.Days),
			zap.Int("meals_per_day", p.MealsPerDay))
		return nil, apperrors.NewEmptyPlanError()
	}

	s.savePlan(ctx, result)

	return &inbound.GeneratePlanResult{
		Plan:        result,
		Calculation: calc,
		Source:      result.Source,
	}, nil
}

// generate tries the generative adapter once and falls back to the
// deterministic assembler on any failure. AI output is rescaled so each
// day's calorie sum matches the authoritative target; assembler output is
// built from trusted recipe data and kept as-is.
func (s *Service) generate(ctx context.Context, p profile.Profile, calc nutrition.Calculation) *plan.Plan {
	if s.aiEnabled && s.generator != nil {
		generated, err := s.generator.Generate(ctx, p, calc)
		if err == nil && generated != nil && !generated.IsEmpty() {
			return Rescale(generated, calc.DailyTarget)
		}
		if err != nil {
			s.logger.Info("generative adapter unavailable, using deterministic assembler",
				zap.Error(err))
		}
	}
	return s.assembler.Assemble(ctx, p, calc)
}

// savePlan hands the plan to the persistence collaborator. Failures are
// logged and absorbed.
func (s *Service) savePlan(ctx context.Context, result *plan.Plan) {
	if s.plans == nil {
		return
	}
	id, err := s.plans.Save(ctx, result)
	if err != nil {
		s.logger.Warn("plan save failed, response unaffected", zap.Error(err))
		return
	}
	result.ID = id

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, planCacheKey(id), data, time.Hour)
		}
	}
}

// GetPlan fetches a previously saved plan, cache first
func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, planCacheKey(id)); err == nil && len(data) > 0 {
			var cached plan.Plan
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if s.plans == nil {
		return nil, apperrors.NewPlanNotFoundError(id.String())
	}

	found, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperrors.NewPlanNotFoundError(id.String())
	}

	if s.cache != nil {
		if data, err := json.Marshal(found); err == nil {
			_ = s.cache.Set(ctx, planCacheKey(id), data, time.Hour)
		}
	}

	return found, nil
}

func planCacheKey(id uuid.UUID) string {
	return "plan:" + id.String()
}
