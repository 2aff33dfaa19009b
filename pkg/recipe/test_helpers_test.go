package recipe

import (
	"path/filepath"
	"testing"

	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// createTestDB opens a migrated SQLite file under the test's temp dir.
func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.sqlite")
	db, err := gorm.Open(sqlite.Open("file:"+path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func createTestRecipe(id, title string) *entities.Recipe {
	return &entities.Recipe{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Rating:      3,
		Time:        20,
		Cost:        4.25,
	}
}

func ingredientsFor(recipeID string, titles ...string) []entities.Ingredient {
	out := make([]entities.Ingredient, 0, len(titles))
	for _, title := range titles {
		out = append(out, entities.Ingredient{Title: title, RecipeID: recipeID})
	}
	return out
}

func ingredientTitles(ingredients []entities.Ingredient) []string {
	out := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, ingredient.Title)
	}
	return out
}
