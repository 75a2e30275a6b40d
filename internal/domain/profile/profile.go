// Package profile defines the user profile consumed by the meal-plan
// engine, together with the total normalization that turns loosely-typed
// request input into canonical values.
package profile

// Sex selects the metabolic formula variant
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the canonical activity classification
type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "sedentary"
	ActivityLight       ActivityLevel = "light"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityIntense     ActivityLevel = "intense"
	ActivityVeryIntense ActivityLevel = "very-intense"
)

// Goal is the canonical dietary goal
type Goal string

const (
	GoalWeightLoss  Goal = "weight-loss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscle-gain"
)

// Physiological bounds. Numeric fields saturate to these before any
// calculation; clamping never fails.
const (
	MinAge, MaxAge         = 15, 100
	MinWeightKg, MaxWeight = 40.0, 200.0
	MinHeightCm, MaxHeight = 140.0, 220.0
	MinDays, MaxDays       = 1, 14
	MinMeals, MaxMeals     = 2, 7
)

// Defaults applied when input is missing or unparseable
const (
	DefaultAge      = 30
	DefaultWeightKg = 70.0
	DefaultHeightCm = 170.0
	DefaultDays     = 7
	DefaultMeals    = 3
)

// RawProfile carries the heterogeneous request fields before
// normalization. Numeric fields accept numbers or strings (including
// comma-decimal strings); enum fields accept free text in any casing.
type RawProfile struct {
	Age         interface{}
	WeightKg    interface{}
	HeightCm    interface{}
	Sex         string
	Activity    string
	Goal        string
	MealsPerDay interface{}
	Days        interface{}
	Allergies   []string
	Preferences []string
}

// Profile is the normalized, clamped profile every downstream component
// works from
type Profile struct {
	Age         int
	WeightKg    float64
	HeightCm    float64
	Sex         Sex
	Activity    ActivityLevel
	Goal        Goal
	MealsPerDay int
	Days        int
	Allergies   []string
	Preferences []string
}
