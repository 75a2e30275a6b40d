package ai

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
)

// Markers for the tolerant line-oriented grammar. The model is prompted to
// emit exactly this shape, but responses drift, so every matcher is
// case-insensitive and every unrecognized line is collected rather than
// treated as fatal.
var (
	dayRe         = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*+\s*)?(?:day|giorno)\s*(\d+)\b`)
	mealRe        = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?(breakfast|morning snack|lunch|afternoon snack|dinner|evening snack|supper|snack)\s*[:\-]\s*(.+)$`)
	caloriesRe    = regexp.MustCompile(`(?i)(\d+)\s*kcal`)
	ingredientsRe = regexp.MustCompile(`(?i)^\s*ingredients?\s*[:\-]\s*(.+)$`)
	prepRe        = regexp.MustCompile(`(?i)^\s*(?:preparation|instructions?)\s*[:\-]\s*(.+)$`)
	macrosLineRe  = regexp.MustCompile(`(?i)^\s*macros?\s*[:\-]\s*(.+)$`)
	proteinRe     = regexp.MustCompile(`(?i)(\d+)\s*g?\s*(?:of\s+)?protein`)
	carbsRe       = regexp.MustCompile(`(?i)(\d+)\s*g?\s*(?:of\s+)?carb`)
	fatRe         = regexp.MustCompile(`(?i)(\d+)\s*g?\s*(?:of\s+)?fat`)
)

// ParseReport summarizes what the parser could and could not use
type ParseReport struct {
	DaysParsed  int
	MealsParsed int
	Unmatched   []string
}

// mealBlock accumulates one meal while its lines stream in
type mealBlock struct {
	slot        nutrition.Slot
	name        string
	calories    int
	ingredients []string
	preparation string
	protein     int
	carbs       int
	fat         int
	hasMacros   bool
}

// complete reports whether the block matched the expected shape: a name,
// a calorie count and a macro triplet. Ingredients and preparation are
// optional.
func (b *mealBlock) complete() bool {
	return b != nil && b.name != "" && b.calories > 0 && b.hasMacros
}

func (b *mealBlock) toMeal() plan.Meal {
	return plan.Meal{
		Slot:         b.slot,
		Name:         b.name,
		Calories:     b.calories,
		Protein:      b.protein,
		Carbs:        b.carbs,
		Fat:          b.fat,
		Ingredients:  b.ingredients,
		Instructions: b.preparation,
	}
}

// ParsePlan scans the model's free-text response for day and meal blocks.
// Blocks that fail the expected shape are skipped, not fatal; lines no
// matcher consumes end up in the report. A result with zero parsed meals
// must be discarded by the caller.
func ParsePlan(text string, p profile.Profile, calc nutrition.Calculation) (*plan.Plan, ParseReport) {
	configured := make(map[nutrition.Slot]bool, len(calc.SlotTargets))
	for _, t := range calc.SlotTargets {
		configured[t.Slot] = true
	}

	report := ParseReport{}
	days := make(map[int]*plan.Day)

	var currentDay *plan.Day
	var currentMeal *mealBlock

	closeMeal := func() {
		if currentMeal == nil {
			return
		}
		if currentDay != nil && currentMeal.complete() {
			currentDay.SetMeal(currentMeal.toMeal())
			report.MealsParsed++
		} else {
			report.Unmatched = append(report.Unmatched, "incomplete meal block: "+currentMeal.name)
		}
		currentMeal = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := dayRe.FindStringSubmatch(line); m != nil {
			closeMeal()
			num, _ := strconv.Atoi(m[1])
			if num < 1 || num > p.Days {
				report.Unmatched = append(report.Unmatched, line)
				currentDay = nil
				continue
			}
			if _, ok := days[num]; !ok {
				days[num] = &plan.Day{Number: num}
			}
			currentDay = days[num]
			continue
		}

		if m := mealRe.FindStringSubmatch(line); m != nil {
			closeMeal()
			slot := slotFromLabel(m[1])
			if currentDay == nil || !configured[slot] {
				report.Unmatched = append(report.Unmatched, line)
				continue
			}
			block := &mealBlock{slot: slot}
			rest := m[2]
			if cal := caloriesRe.FindStringSubmatch(rest); cal != nil {
				block.calories, _ = strconv.Atoi(cal[1])
			}
			name := rest
			if idx := strings.Index(rest, "|"); idx >= 0 {
				name = rest[:idx]
			}
			block.name = strings.TrimSpace(name)
			currentMeal = block
			continue
		}

		if currentMeal != nil {
			if m := ingredientsRe.FindStringSubmatch(line); m != nil {
				currentMeal.ingredients = splitList(m[1])
				continue
			}
			if m := prepRe.FindStringSubmatch(line); m != nil {
				currentMeal.preparation = strings.TrimSpace(m[1])
				continue
			}
			if m := macrosLineRe.FindStringSubmatch(line); m != nil {
				parseMacros(currentMeal, m[1])
				continue
			}
		}

		report.Unmatched = append(report.Unmatched, line)
	}
	closeMeal()

	if report.MealsParsed == 0 {
		return nil, report
	}

	result := &plan.Plan{
		Days:      make([]plan.Day, 0, p.Days),
		Source:    plan.SourceAI,
		CreatedAt: time.Now(),
	}
	for num := 1; num <= p.Days; num++ {
		if day, ok := days[num]; ok {
			result.Days = append(result.Days, *day)
			if len(day.Meals) > 0 {
				report.DaysParsed++
			}
		} else {
			result.Days = append(result.Days, plan.Day{Number: num})
		}
	}
	result.RecomputeTotals()

	return result, report
}

func parseMacros(block *mealBlock, text string) {
	found := false
	if m := proteinRe.FindStringSubmatch(text); m != nil {
		block.protein, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := carbsRe.FindStringSubmatch(text); m != nil {
		block.carbs, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := fatRe.FindStringSubmatch(text); m != nil {
		block.fat, _ = strconv.Atoi(m[1])
		found = true
	}
	block.hasMacros = found
}

func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func slotFromLabel(label string) nutrition.Slot {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "-")
	if key == "snack" {
		return nutrition.SlotAfternoonSnack
	}
	return nutrition.Slot(key)
}
