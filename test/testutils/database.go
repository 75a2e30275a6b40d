package testutils

import (
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mealsmith/v1/internal/infrastructure/persistence/sqlite"
)

// NewTestDatabase creates an in-memory SQLite database with the schema
// migrated. Each call returns an isolated database.
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", gormLogger.Silent)
	if err != nil {
		t.Fatalf("failed to set up test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// NewSeededTestDatabase creates a test database populated with the demo
// recipe corpus
func NewSeededTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewTestDatabase(t)
	if err := sqlite.SeedRecipes(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return db
}
