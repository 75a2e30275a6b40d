package nutrition

import (
	"fmt"
	"math"

	"github.com/mealsmith/v1/internal/domain/profile"
)

// Harris-Benedict coefficient sets, selected by the normalized sex field
const (
	maleBase, maleWeight, maleHeight, maleAge         = 88.362, 13.397, 4.799, 5.677
	femaleBase, femaleWeight, femaleHeight, femaleAge = 447.593, 9.247, 3.098, 4.330
)

// activityFactors maps canonical activity levels to TDEE multipliers
var activityFactors = map[profile.ActivityLevel]float64{
	profile.ActivitySedentary:   1.2,
	profile.ActivityLight:       1.375,
	profile.ActivityModerate:    1.55,
	profile.ActivityIntense:     1.725,
	profile.ActivityVeryIntense: 1.9,
}

// goalFactors maps canonical goals to target multipliers
var goalFactors = map[profile.Goal]float64{
	profile.GoalWeightLoss:  0.85,
	profile.GoalMaintenance: 1.0,
	profile.GoalMuscleGain:  1.15,
}

const (
	defaultActivityFactor = 1.375
	defaultGoalFactor     = 1.0
)

// Safety bounds. A calculation outside these is returned for diagnostics
// but must never drive plan generation.
const (
	MinSafeTarget, MaxSafeTarget = 1200, 3500
	MinSafeTDEE, MaxSafeTDEE     = 1200.0, 4000.0
	MinSafeBMR, MaxSafeBMR       = 1000.0, 2500.0
)

// Trace records how a calculation was produced, for transparency and
// debugging
type Trace struct {
	FormulaVariant string   `json:"formula_variant"`
	ActivityFactor float64  `json:"activity_factor"`
	GoalFactor     float64  `json:"goal_factor"`
	Notes          []string `json:"notes,omitempty"`
}

// Calculation is the immutable result of computing energy targets for one
// plan-generation request
type Calculation struct {
	BMR         float64      `json:"bmr"`
	TDEE        float64      `json:"tdee"`
	DailyTarget int          `json:"daily_target"`
	SlotTargets []SlotTarget `json:"slot_targets"`
	Safe        bool         `json:"safe"`
	Trace       Trace        `json:"trace"`
}

// SlotTargetFor returns the calorie allotment for a slot, zero when the
// slot is not configured
func (c Calculation) SlotTargetFor(slot Slot) int {
	for _, t := range c.SlotTargets {
		if t.Slot == slot {
			return t.Calories
		}
	}
	return 0
}

// ComputeTargets derives BMR, TDEE, the daily calorie target and the
// per-slot distribution from a normalized profile. The function is pure:
// same profile, same calculation.
func ComputeTargets(p profile.Profile) Calculation {
	trace := Trace{FormulaVariant: string(p.Sex)}

	var bmr float64
	switch p.Sex {
	case profile.SexFemale:
		bmr = femaleBase + femaleWeight*p.WeightKg + femaleHeight*p.HeightCm - femaleAge*float64(p.Age)
	default:
		bmr = maleBase + maleWeight*p.WeightKg + maleHeight*p.HeightCm - maleAge*float64(p.Age)
		trace.FormulaVariant = string(profile.SexMale)
	}

	activityFactor, ok := activityFactors[p.Activity]
	if !ok {
		activityFactor = defaultActivityFactor
		trace.Notes = append(trace.Notes, fmt.Sprintf("activity %q has no multiplier, defaulted to %g", p.Activity, defaultActivityFactor))
	}
	trace.ActivityFactor = activityFactor

	goalFactor, ok := goalFactors[p.Goal]
	if !ok {
		goalFactor = defaultGoalFactor
		trace.Notes = append(trace.Notes, fmt.Sprintf("goal %q has no multiplier, defaulted to %g", p.Goal, defaultGoalFactor))
	}
	trace.GoalFactor = goalFactor

	tdee := bmr * activityFactor
	target := int(math.Round(tdee * goalFactor))

	return Calculation{
		BMR:         bmr,
		TDEE:        tdee,
		DailyTarget: target,
		SlotTargets: Distribute(target, p.MealsPerDay),
		Safe:        isSafe(bmr, tdee, target),
		Trace:       trace,
	}
}

// ManualCalculation builds a calculation from a caller-supplied daily
// target, bypassing the metabolic formula. The safety gate still applies
// to the target itself.
func ManualCalculation(dailyTarget, meals int) Calculation {
	return Calculation{
		DailyTarget: dailyTarget,
		SlotTargets: Distribute(dailyTarget, meals),
		Safe:        dailyTarget >= MinSafeTarget && dailyTarget <= MaxSafeTarget,
		Trace: Trace{
			FormulaVariant: "manual-override",
			Notes:          []string{"daily target supplied by caller, metabolic formula bypassed"},
		},
	}
}

func isSafe(bmr, tdee float64, target int) bool {
	return target >= MinSafeTarget && target <= MaxSafeTarget &&
		tdee >= MinSafeTDEE && tdee <= MaxSafeTDEE &&
		bmr >= MinSafeBMR && bmr <= MaxSafeBMR
}
