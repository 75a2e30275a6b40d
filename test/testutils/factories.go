// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe creates a recipe for the given category with randomized but
// plausible macros
func (f *RecipeFactory) Recipe(category recipe.Category) recipe.Recipe {
	calories := f.faker.Number(150, 800)
	return recipe.Recipe{
		ID:              uuid.New(),
		Name:            fmt.Sprintf("%s %s", f.faker.Adjective(), f.faker.Dinner()),
		Category:        category,
		DietTags:        []string{recipe.DietBalanced},
		Calories:        calories,
		Protein:         calories / 20,
		Carbs:           calories / 10,
		Fat:             calories / 30,
		PrepTimeMinutes: f.faker.Number(5, 60),
		Ingredients:     []string{f.faker.Vegetable(), f.faker.Fruit(), f.faker.Lunch()},
		Instructions:    f.faker.Sentence(8),
		Rating:          float64(f.faker.Number(30, 50)) / 10,
	}
}

// Corpus creates count recipes per category, covering all four categories
func (f *RecipeFactory) Corpus(countPerCategory int) []recipe.Recipe {
	categories := []recipe.Category{
		recipe.CategoryBreakfast,
		recipe.CategoryLunch,
		recipe.CategoryDinner,
		recipe.CategorySnack,
	}
	recipes := make([]recipe.Recipe, 0, len(categories)*countPerCategory)
	for _, category := range categories {
		for i := 0; i < countPerCategory; i++ {
			recipes = append(recipes, f.Recipe(category))
		}
	}
	return recipes
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe recipe.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		recipe: recipe.Recipe{
			ID:              uuid.New(),
			Name:            "Grilled Chicken Bowl",
			Category:        recipe.CategoryLunch,
			DietTags:        []string{recipe.DietBalanced},
			Calories:        450,
			Protein:         35,
			Carbs:           40,
			Fat:             15,
			PrepTimeMinutes: 25,
			Ingredients:     []string{"chicken breast", "rice", "broccoli"},
			Instructions:    "Grill the chicken, steam the rice and broccoli, assemble.",
			Rating:          4.2,
		},
	}
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.recipe.Name = name
	return rb
}

// WithCategory sets the recipe category
func (rb *RecipeBuilder) WithCategory(category recipe.Category) *RecipeBuilder {
	rb.recipe.Category = category
	return rb
}

// WithDietTags sets the diet tags
func (rb *RecipeBuilder) WithDietTags(tags ...string) *RecipeBuilder {
	rb.recipe.DietTags = tags
	return rb
}

// WithAllergens sets the allergen tags
func (rb *RecipeBuilder) WithAllergens(allergens ...string) *RecipeBuilder {
	rb.recipe.AllergenTags = allergens
	return rb
}

// WithMacros sets calories and macro grams
func (rb *RecipeBuilder) WithMacros(calories, protein, carbs, fat int) *RecipeBuilder {
	rb.recipe.Calories = calories
	rb.recipe.Protein = protein
	rb.recipe.Carbs = carbs
	rb.recipe.Fat = fat
	return rb
}

// WithIngredients sets the ingredient list
func (rb *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	rb.recipe.Ingredients = ingredients
	return rb
}

// WithRating sets the rating
func (rb *RecipeBuilder) WithRating(rating float64) *RecipeBuilder {
	rb.recipe.Rating = rating
	return rb
}

// Build returns the constructed recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return rb.recipe
}

// ProfileBuilder provides a fluent interface for building normalized profiles
type ProfileBuilder struct {
	profile profile.Profile
}

// NewProfileBuilder creates a profile builder with sensible defaults
func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		profile: profile.Profile{
			Age:         30,
			WeightKg:    80,
			HeightCm:    180,
			Sex:         profile.SexMale,
			Activity:    profile.ActivityLight,
			Goal:        profile.GoalMaintenance,
			MealsPerDay: 3,
			Days:        7,
		},
	}
}

// WithAge sets the age
func (pb *ProfileBuilder) WithAge(age int) *ProfileBuilder {
	pb.profile.Age = age
	return pb
}

// WithBody sets weight and height
func (pb *ProfileBuilder) WithBody(weightKg, heightCm float64) *ProfileBuilder {
	pb.profile.WeightKg = weightKg
	pb.profile.HeightCm = heightCm
	return pb
}

// WithSex sets the sex
func (pb *ProfileBuilder) WithSex(sex profile.Sex) *ProfileBuilder {
	pb.profile.Sex = sex
	return pb
}

// WithActivity sets the activity level
func (pb *ProfileBuilder) WithActivity(activity profile.ActivityLevel) *ProfileBuilder {
	pb.profile.Activity = activity
	return pb
}

// WithGoal sets the dietary goal
func (pb *ProfileBuilder) WithGoal(goal profile.Goal) *ProfileBuilder {
	pb.profile.Goal = goal
	return pb
}

// WithSchedule sets meals per day and plan length
func (pb *ProfileBuilder) WithSchedule(mealsPerDay, days int) *ProfileBuilder {
	pb.profile.MealsPerDay = mealsPerDay
	pb.profile.Days = days
	return pb
}

// WithAllergies sets the allergy list
func (pb *ProfileBuilder) WithAllergies(allergies ...string) *ProfileBuilder {
	pb.profile.Allergies = allergies
	return pb
}

// WithPreferences sets the preference list
func (pb *ProfileBuilder) WithPreferences(preferences ...string) *ProfileBuilder {
	pb.profile.Preferences = preferences
	return pb
}

// Build returns the constructed profile
func (pb *ProfileBuilder) Build() profile.Profile {
	return pb.profile
}
