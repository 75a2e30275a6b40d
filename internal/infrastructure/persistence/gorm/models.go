// Package gorm provides GORM database models and repositories for the
// recipe corpus and saved meal plans
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents one entry of the recipe corpus
type RecipeModel struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key"`
	Name            string      `gorm:"not null;index"`
	Category        string      `gorm:"not null;index"`
	DietTags        StringSlice `gorm:"type:text"`
	AllergenTags    StringSlice `gorm:"type:text"`
	Calories        int         `gorm:"not null"`
	Protein         int         `gorm:"not null"`
	Carbs           int         `gorm:"not null"`
	Fat             int         `gorm:"not null"`
	PrepTimeMinutes int
	Ingredients     StringSlice `gorm:"type:text"`
	Instructions    string      `gorm:"type:text"`
	Rating          float64     `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// MealPlanModel represents a saved meal plan. Day and slot structure is
// stored as a JSON document; the plan is written once and read back whole,
// never queried by its inner structure.
type MealPlanModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Source        string    `gorm:"not null"`
	Days          JSONDoc   `gorm:"type:text"`
	TotalCalories int
	TotalProtein  int
	TotalCarbs    int
	TotalFat      int
	CreatedAt     time.Time
}

// TableName returns the table name for MealPlanModel
func (MealPlanModel) TableName() string {
	return "meal_plans"
}

// StringSlice is a custom type for handling string arrays as JSON columns
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONDoc stores an opaque JSON document
type JSONDoc json.RawMessage

// Scan implements the sql.Scanner interface
func (j *JSONDoc) Scan(value interface{}) error {
	if value == nil {
		*j = JSONDoc("null")
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = JSONDoc(append([]byte(nil), v...))
		return nil
	case string:
		*j = JSONDoc(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONDoc", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONDoc) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "null", nil
	}
	return string(j), nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealPlanModel
func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
