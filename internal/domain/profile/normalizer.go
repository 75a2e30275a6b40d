package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// activityAliases maps historical free-text activity labels to canonical
// values. Lookup is case-insensitive; unknown labels fall back to light.
var activityAliases = map[string]ActivityLevel{
	"sedentary":           ActivitySedentary,
	"sedentario":          ActivitySedentary,
	"sedentaria":          ActivitySedentary,
	"attività sedentaria": ActivitySedentary,
	"attivita sedentaria": ActivitySedentary,
	"none":                ActivitySedentary,
	"light":               ActivityLight,
	"lightly active":      ActivityLight,
	"leggera":             ActivityLight,
	"leggero":             ActivityLight,
	"attività leggera":    ActivityLight,
	"attivita leggera":    ActivityLight,
	"moderate":            ActivityModerate,
	"moderately active":   ActivityModerate,
	"moderata":            ActivityModerate,
	"moderato":            ActivityModerate,
	"attività moderata":   ActivityModerate,
	"attivita moderata":   ActivityModerate,
	"intense":             ActivityIntense,
	"active":              ActivityIntense,
	"intensa":             ActivityIntense,
	"intenso":             ActivityIntense,
	"attività intensa":    ActivityIntense,
	"attivita intensa":    ActivityIntense,
	"very-intense":        ActivityVeryIntense,
	"very intense":        ActivityVeryIntense,
	"very active":         ActivityVeryIntense,
	"extra active":        ActivityVeryIntense,
	"molto intensa":       ActivityVeryIntense,
	"molto intenso":       ActivityVeryIntense,
	"atleta":              ActivityVeryIntense,
	"athlete":             ActivityVeryIntense,
}

// goalAliases maps historical goal labels to canonical values. Unknown
// labels fall back to maintenance.
var goalAliases = map[string]Goal{
	"weight-loss":              GoalWeightLoss,
	"weight loss":              GoalWeightLoss,
	"lose weight":              GoalWeightLoss,
	"cut":                      GoalWeightLoss,
	"cutting":                  GoalWeightLoss,
	"dimagrimento":             GoalWeightLoss,
	"perdita di peso":          GoalWeightLoss,
	"perdere peso":             GoalWeightLoss,
	"maintenance":              GoalMaintenance,
	"maintain":                 GoalMaintenance,
	"maintain weight":          GoalMaintenance,
	"mantenimento":             GoalMaintenance,
	"mantenere il peso":        GoalMaintenance,
	"muscle-gain":              GoalMuscleGain,
	"muscle gain":              GoalMuscleGain,
	"gain muscle":              GoalMuscleGain,
	"bulk":                     GoalMuscleGain,
	"bulking":                  GoalMuscleGain,
	"massa":                    GoalMuscleGain,
	"aumento massa":            GoalMuscleGain,
	"aumento massa muscolare":  GoalMuscleGain,
	"crescita muscolare":       GoalMuscleGain,
}

var sexAliases = map[string]Sex{
	"male":    SexMale,
	"m":       SexMale,
	"man":     SexMale,
	"uomo":    SexMale,
	"maschio": SexMale,
	"female":  SexFemale,
	"f":       SexFemale,
	"woman":   SexFemale,
	"donna":   SexFemale,
	"femmina": SexFemale,
}

// Normalize maps a raw profile to canonical values. It is total: malformed
// input defaults rather than failing, out-of-range numbers saturate to the
// documented bounds, and every default or alias resolution is recorded as
// a trace note.
func Normalize(raw RawProfile) (Profile, []string) {
	var notes []string

	p := Profile{
		Age:         clampInt(parseInt(raw.Age, DefaultAge, "age", &notes), MinAge, MaxAge, "age", &notes),
		WeightKg:    clampFloat(parseFloat(raw.WeightKg, DefaultWeightKg, "weight_kg", &notes), MinWeightKg, MaxWeight, "weight_kg", &notes),
		HeightCm:    clampFloat(parseFloat(raw.HeightCm, DefaultHeightCm, "height_cm", &notes), MinHeightCm, MaxHeight, "height_cm", &notes),
		Sex:         normalizeSex(raw.Sex, &notes),
		Activity:    NormalizeActivity(raw.Activity, &notes),
		Goal:        NormalizeGoal(raw.Goal, &notes),
		MealsPerDay: clampInt(parseInt(raw.MealsPerDay, DefaultMeals, "meals_per_day", &notes), MinMeals, MaxMeals, "meals_per_day", &notes),
		Days:        clampInt(parseInt(raw.Days, DefaultDays, "days", &notes), MinDays, MaxDays, "days", &notes),
		Allergies:   normalizeTokens(raw.Allergies),
		Preferences: normalizeTokens(raw.Preferences),
	}

	return p, notes
}

// NormalizeActivity resolves a free-text activity label. Exported because
// the calculator reuses it on its multiplier lookup.
func NormalizeActivity(raw string, notes *[]string) ActivityLevel {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		addNote(notes, "activity missing, defaulted to light")
		return ActivityLight
	}
	if level, ok := activityAliases[key]; ok {
		if string(level) != key {
			addNote(notes, fmt.Sprintf("activity %q resolved to %q", raw, level))
		}
		return level
	}
	addNote(notes, fmt.Sprintf("activity %q not recognized, defaulted to light", raw))
	return ActivityLight
}

// NormalizeGoal resolves a free-text goal label
func NormalizeGoal(raw string, notes *[]string) Goal {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		addNote(notes, "goal missing, defaulted to maintenance")
		return GoalMaintenance
	}
	if goal, ok := goalAliases[key]; ok {
		if string(goal) != key {
			addNote(notes, fmt.Sprintf("goal %q resolved to %q", raw, goal))
		}
		return goal
	}
	addNote(notes, fmt.Sprintf("goal %q not recognized, defaulted to maintenance", raw))
	return GoalMaintenance
}

func normalizeSex(raw string, notes *[]string) Sex {
	key := strings.ToLower(strings.TrimSpace(raw))
	if sex, ok := sexAliases[key]; ok {
		return sex
	}
	addNote(notes, fmt.Sprintf("sex %q not recognized, defaulted to male", raw))
	return SexMale
}

// normalizeTokens lowercases and trims tag lists, dropping empties and
// duplicates while preserving order
func normalizeTokens(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// parseFloat accepts numbers or numeric strings, including comma-decimal
// strings like "72,5". Unparseable input yields the default.
func parseFloat(v interface{}, def float64, field string, notes *[]string) float64 {
	switch n := v.(type) {
	case nil:
		addNote(notes, fmt.Sprintf("%s missing, defaulted to %g", field, def))
		return def
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		addNote(notes, fmt.Sprintf("%s %q unparseable, defaulted to %g", field, n, def))
		return def
	default:
		addNote(notes, fmt.Sprintf("%s has unsupported type %T, defaulted to %g", field, v, def))
		return def
	}
}

func parseInt(v interface{}, def int, field string, notes *[]string) int {
	f := parseFloat(v, float64(def), field, notes)
	return int(math.Round(f))
}

func clampFloat(v, min, max float64, field string, notes *[]string) float64 {
	switch {
	case v < min:
		addNote(notes, fmt.Sprintf("%s %g clamped to %g", field, v, min))
		return min
	case v > max:
		addNote(notes, fmt.Sprintf("%s %g clamped to %g", field, v, max))
		return max
	default:
		return v
	}
}

func clampInt(v, min, max int, field string, notes *[]string) int {
	switch {
	case v < min:
		addNote(notes, fmt.Sprintf("%s %d clamped to %d", field, v, min))
		return min
	case v > max:
		addNote(notes, fmt.Sprintf("%s %d clamped to %d", field, v, max))
		return max
	default:
		return v
	}
}

func addNote(notes *[]string, note string) {
	if notes != nil {
		*notes = append(*notes, note)
	}
}
