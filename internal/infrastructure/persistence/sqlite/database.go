// Package sqlite provides SQLite database setup and the seeded demo
// recipe corpus
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/mealsmith/v1/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// An in-memory SQLite database exists per connection, so the pool
	// must be pinned to a single connection to share it.
	if dbPath == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.MealPlanModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedRecipes populates the recipe corpus with the authored demo set.
// Idempotent: an already-populated corpus is left alone.
func SeedRecipes(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.RecipeModel{}).Count(&count)
	if count > 0 {
		return nil
	}

	for _, r := range demoRecipes() {
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", r.Name, err)
		}
	}

	return nil
}

func demoRecipes() []gormModels.RecipeModel {
	return []gormModels.RecipeModel{
		// Breakfast
		{
			Name:            "Oat Porridge with Berries",
			Category:        "breakfast",
			DietTags:        []string{"balanced", "vegetarian"},
			AllergenTags:    []string{"gluten"},
			Calories:        420, Protein: 14, Carbs: 68, Fat: 10,
			PrepTimeMinutes: 10,
			Ingredients:     []string{"rolled oats", "milk", "blueberries", "honey"},
			Instructions:    "Simmer the oats in milk until creamy, then top with berries and a drizzle of honey.",
			Rating:          4.6,
		},
		{
			Name:            "Greek Yogurt Protein Bowl",
			Category:        "breakfast",
			DietTags:        []string{"high-protein", "balanced", "vegetarian"},
			AllergenTags:    []string{"lactose", "nuts"},
			Calories:        380, Protein: 28, Carbs: 32, Fat: 14,
			PrepTimeMinutes: 5,
			Ingredients:     []string{"greek yogurt", "walnuts", "banana", "chia seeds"},
			Instructions:    "Layer yogurt with sliced banana, walnuts and chia seeds.",
			Rating:          4.7,
		},
		{
			Name:            "Spinach and Feta Omelette",
			Category:        "breakfast",
			DietTags:        []string{"low-carb", "ketogenic", "vegetarian"},
			AllergenTags:    []string{"eggs", "lactose"},
			Calories:        350, Protein: 24, Carbs: 6, Fat: 26,
			PrepTimeMinutes: 12,
			Ingredients:     []string{"eggs", "spinach", "feta cheese", "olive oil"},
			Instructions:    "Whisk the eggs, fold in spinach and feta, cook gently in olive oil.",
			Rating:          4.5,
		},
		{
			Name:            "Avocado Rice Cakes",
			Category:        "breakfast",
			DietTags:        []string{"balanced", "vegan"},
			AllergenTags:    []string{},
			Calories:        310, Protein: 8, Carbs: 38, Fat: 15,
			PrepTimeMinutes: 8,
			Ingredients:     []string{"rice cakes", "avocado", "cherry tomatoes", "lemon juice"},
			Instructions:    "Mash the avocado with lemon juice, spread over rice cakes, top with tomatoes.",
			Rating:          4.2,
		},
		{
			Name:            "Banana Peanut Smoothie",
			Category:        "breakfast",
			DietTags:        []string{"high-calorie", "high-protein", "vegetarian"},
			AllergenTags:    []string{"nuts", "lactose"},
			Calories:        520, Protein: 24, Carbs: 58, Fat: 22,
			PrepTimeMinutes: 5,
			Ingredients:     []string{"banana", "peanut butter", "whole milk", "oats", "honey"},
			Instructions:    "Blend everything until smooth.",
			Rating:          4.4,
		},
		// Lunch
		{
			Name:            "Grilled Chicken Quinoa Bowl",
			Category:        "lunch",
			DietTags:        []string{"high-protein", "balanced"},
			AllergenTags:    []string{},
			Calories:        560, Protein: 42, Carbs: 52, Fat: 18,
			PrepTimeMinutes: 25,
			Ingredients:     []string{"chicken breast", "quinoa", "broccoli", "olive oil", "lemon"},
			Instructions:    "Grill the chicken, steam the broccoli, serve over quinoa with a lemon dressing.",
			Rating:          4.8,
		},
		{
			Name:            "Tuna Salad with White Beans",
			Category:        "lunch",
			DietTags:        []string{"low-carb", "high-protein"},
			AllergenTags:    []string{"fish"},
			Calories:        450, Protein: 38, Carbs: 28, Fat: 20,
			PrepTimeMinutes: 15,
			Ingredients:     []string{"tuna", "cannellini beans", "red onion", "olive oil", "parsley"},
			Instructions:    "Combine drained tuna and beans with sliced onion, dress with oil and parsley.",
			Rating:          4.4,
		},
		{
			Name:            "Spaghetti al Pomodoro",
			Category:        "lunch",
			DietTags:        []string{"balanced", "vegetarian"},
			AllergenTags:    []string{"gluten"},
			Calories:        620, Protein: 18, Carbs: 98, Fat: 16,
			PrepTimeMinutes: 20,
			Ingredients:     []string{"spaghetti", "tomato sauce", "basil", "parmesan", "olive oil"},
			Instructions:    "Cook the pasta al dente and toss with simmered tomato sauce and basil.",
			Rating:          4.6,
		},
		{
			Name:            "Chickpea Buddha Bowl",
			Category:        "lunch",
			DietTags:        []string{"balanced", "vegan"},
			AllergenTags:    []string{},
			Calories:        540, Protein: 20, Carbs: 72, Fat: 18,
			PrepTimeMinutes: 30,
			Ingredients:     []string{"chickpeas", "sweet potato", "kale", "tahini", "lemon juice"},
			Instructions:    "Roast the chickpeas and sweet potato, assemble over kale with tahini dressing.",
			Rating:          4.5,
		},
		{
			Name:            "Zucchini Noodles with Pesto Chicken",
			Category:        "lunch",
			DietTags:        []string{"low-carb", "ketogenic"},
			AllergenTags:    []string{"nuts", "lactose"},
			Calories:        430, Protein: 36, Carbs: 12, Fat: 26,
			PrepTimeMinutes: 20,
			Ingredients:     []string{"zucchini", "chicken breast", "basil pesto", "pine nuts"},
			Instructions:    "Spiralize the zucchini, sauté briefly, toss with sliced chicken and pesto.",
			Rating:          4.3,
		},
		// Dinner
		{
			Name:            "Baked Salmon with Asparagus",
			Category:        "dinner",
			DietTags:        []string{"low-carb", "ketogenic", "high-protein"},
			AllergenTags:    []string{"fish"},
			Calories:        520, Protein: 40, Carbs: 10, Fat: 34,
			PrepTimeMinutes: 25,
			Ingredients:     []string{"salmon fillet", "asparagus", "olive oil", "garlic", "lemon"},
			Instructions:    "Roast the salmon and asparagus with garlic and lemon at 200°C for 15 minutes.",
			Rating:          4.9,
		},
		{
			Name:            "Beef and Vegetable Stir Fry",
			Category:        "dinner",
			DietTags:        []string{"high-protein", "balanced"},
			AllergenTags:    []string{"soy"},
			Calories:        580, Protein: 38, Carbs: 42, Fat: 26,
			PrepTimeMinutes: 20,
			Ingredients:     []string{"beef strips", "bell pepper", "broccoli", "soy sauce", "rice"},
			Instructions:    "Sear the beef, stir-fry the vegetables, finish with soy sauce over steamed rice.",
			Rating:          4.6,
		},
		{
			Name:            "Lentil and Vegetable Curry",
			Category:        "dinner",
			DietTags:        []string{"balanced", "vegan"},
			AllergenTags:    []string{},
			Calories:        510, Protein: 22, Carbs: 68, Fat: 16,
			PrepTimeMinutes: 35,
			Ingredients:     []string{"red lentils", "coconut milk", "tomatoes", "curry paste", "rice"},
			Instructions:    "Simmer the lentils in coconut milk with tomatoes and curry paste, serve with rice.",
			Rating:          4.5,
		},
		{
			Name:            "Chicken Parmigiana",
			Category:        "dinner",
			DietTags:        []string{"high-calorie", "high-protein"},
			AllergenTags:    []string{"gluten", "lactose", "eggs"},
			Calories:        720, Protein: 48, Carbs: 52, Fat: 34,
			PrepTimeMinutes: 40,
			Ingredients:     []string{"chicken breast", "breadcrumbs", "mozzarella", "tomato sauce", "egg"},
			Instructions:    "Bread and fry the chicken, top with sauce and mozzarella, bake until golden.",
			Rating:          4.7,
		},
		{
			Name:            "Stuffed Bell Peppers",
			Category:        "dinner",
			DietTags:        []string{"balanced", "vegetarian"},
			AllergenTags:    []string{"lactose"},
			Calories:        460, Protein: 18, Carbs: 56, Fat: 18,
			PrepTimeMinutes: 45,
			Ingredients:     []string{"bell peppers", "rice", "mushrooms", "onion", "cheese"},
			Instructions:    "Fill the peppers with a rice and mushroom mix, top with cheese and bake.",
			Rating:          4.2,
		},
		// Snacks
		{
			Name:            "Mixed Nuts and Dried Fruit",
			Category:        "snack",
			DietTags:        []string{"balanced", "vegan", "high-calorie"},
			AllergenTags:    []string{"nuts"},
			Calories:        280, Protein: 8, Carbs: 22, Fat: 18,
			PrepTimeMinutes: 2,
			Ingredients:     []string{"almonds", "walnuts", "raisins", "dried apricots"},
			Instructions:    "Combine and portion into a small bowl.",
			Rating:          4.1,
		},
		{
			Name:            "Protein Shake",
			Category:        "snack",
			DietTags:        []string{"high-protein"},
			AllergenTags:    []string{"lactose"},
			Calories:        220, Protein: 30, Carbs: 12, Fat: 5,
			PrepTimeMinutes: 3,
			Ingredients:     []string{"whey protein", "milk", "ice"},
			Instructions:    "Shake the protein powder with cold milk.",
			Rating:          4.0,
		},
		{
			Name:            "Apple with Peanut Butter",
			Category:        "snack",
			DietTags:        []string{"balanced", "vegetarian"},
			AllergenTags:    []string{"nuts"},
			Calories:        250, Protein: 7, Carbs: 30, Fat: 13,
			PrepTimeMinutes: 3,
			Ingredients:     []string{"apple", "peanut butter"},
			Instructions:    "Slice the apple and serve with peanut butter for dipping.",
			Rating:          4.3,
		},
		{
			Name:            "Carrot Sticks with Hummus",
			Category:        "snack",
			DietTags:        []string{"low-carb", "balanced", "vegan"},
			AllergenTags:    []string{},
			Calories:        180, Protein: 6, Carbs: 20, Fat: 9,
			PrepTimeMinutes: 5,
			Ingredients:     []string{"carrots", "hummus"},
			Instructions:    "Cut the carrots into sticks and serve with hummus.",
			Rating:          4.2,
		},
		{
			Name:            "Hard-Boiled Eggs",
			Category:        "snack",
			DietTags:        []string{"low-carb", "ketogenic", "high-protein"},
			AllergenTags:    []string{"eggs"},
			Calories:        160, Protein: 13, Carbs: 1, Fat: 11,
			PrepTimeMinutes: 12,
			Ingredients:     []string{"eggs", "salt"},
			Instructions:    "Boil the eggs for ten minutes, cool, peel and season.",
			Rating:          3.9,
		},
	}
}
