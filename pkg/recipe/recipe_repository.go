package recipe

import (
	"context"
	"fmt"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		InsertRecipe(ctx context.Context, recipe *entities.Recipe) error
		InsertIngredients(ctx context.Context, ingredients []entities.Ingredient) error
		CreateRecipeWithIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetIngredientsByRecipeID(ctx context.Context, recipeID string) ([]entities.Ingredient, error)
		GetRecipesWithIngredients(ctx context.Context) ([]RecipeWithIngredients, error)
		CountRecipes(ctx context.Context) (int64, error)
	}

	RecipeWithIngredients struct {
		Recipe      entities.Recipe
		Ingredients []entities.Ingredient
	}

	// recipeRepository owns the single connection. Every call, read or write,
	// holds lock for its whole duration, so at most one statement sequence is
	// in flight at a time.
	recipeRepository struct {
		db   *gorm.DB
		lock *semaphore.Weighted
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{
		db:   db,
		lock: semaphore.NewWeighted(1),
	}
}

func (r *recipeRepository) acquire(ctx context.Context) (func(), error) {
	if err := r.lock.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	return func() { r.lock.Release(1) }, nil
}

// InsertRecipe writes only the recipe row, outside any transaction.
func (r *recipeRepository) InsertRecipe(ctx context.Context, recipe *entities.Recipe) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return r.db.WithContext(ctx).Omit("Ingredients").Create(recipe).Error
}

// InsertIngredients writes ingredient rows on their own, outside any
// transaction. Creation goes through CreateRecipeWithIngredients.
func (r *recipeRepository) InsertIngredients(ctx context.Context, ingredients []entities.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}

	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return r.db.WithContext(ctx).Create(&ingredients).Error
}

// CreateRecipeWithIngredients writes the recipe row and its ingredient rows in
// one transaction, so a failed ingredient insert leaves no orphaned recipe.
func (r *recipeRepository) CreateRecipeWithIngredients(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient) error {
	release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Create(recipe).Error; err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		if len(ingredients) == 0 {
			return nil
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return fmt.Errorf("insert ingredients: %w", err)
		}
		return nil
	})
}

// GetRecipeByID returns nil, nil when no recipe has the id.
func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var recipes []entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(2).Find(&recipes).Error; err != nil {
		return nil, err
	}

	switch len(recipes) {
	case 0:
		return nil, nil
	case 1:
		return &recipes[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRecipe, id)
	}
}

func (r *recipeRepository) GetIngredientsByRecipeID(ctx context.Context, recipeID string) ([]entities.Ingredient, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetRecipesWithIngredients loads every recipe and every ingredient in two
// queries and groups ingredients under their recipe. Recipes without
// ingredients are included.
func (r *recipeRepository) GetRecipesWithIngredients(ctx context.Context) ([]RecipeWithIngredients, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var recipes []entities.Recipe
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Order("id asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]entities.Ingredient, len(recipes))
	for _, ingredient := range ingredients {
		grouped[ingredient.RecipeID] = append(grouped[ingredient.RecipeID], ingredient)
	}

	result := make([]RecipeWithIngredients, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, RecipeWithIngredients{
			Recipe:      recipe,
			Ingredients: grouped[recipe.ID],
		})
	}
	return result, nil
}

func (r *recipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	release, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
