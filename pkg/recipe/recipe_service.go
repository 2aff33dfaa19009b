package recipe

import (
	"context"
	"fmt"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils"
	"recipe-catalog/pkg/asset"
	"recipe-catalog/pkg/search"

	"github.com/gofiber/fiber/v2/log"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error)
		GetRecipeByID(ctx context.Context, id string) (domain.RecipeResponse, error)
		SearchRecipes(ctx context.Context, req domain.SearchRecipesRequest) ([]domain.RecipeResponse, error)
		CountRecipes(ctx context.Context) (int64, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		assetStore       asset.AssetStore
		generateID       func() string
	}
)

func NewRecipeService(recipeRepository RecipeRepository, assetStore asset.AssetStore) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		assetStore:       assetStore,
		generateID:       utils.GenerateRecipeID,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error) {
	recipe := &entities.Recipe{
		ID:          s.generateID(),
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		Time:        req.Time,
		Cost:        req.Cost,
	}

	// The image goes first: if it cannot be stored, no row is written.
	if req.ImageBlob != nil {
		if err := s.assetStore.Store(ctx, recipe.ID, *req.ImageBlob); err != nil {
			log.Errorf("Failed to upload image for id %s, recipe not created: %v", recipe.ID, err)
			return domain.CreateRecipeResponse{}, err
		}
	}

	ingredients := make([]entities.Ingredient, 0, len(req.Ingredients))
	for _, title := range req.Ingredients {
		ingredients = append(ingredients, entities.Ingredient{
			Title:    title,
			RecipeID: recipe.ID,
		})
	}

	if err := s.recipeRepository.CreateRecipeWithIngredients(ctx, recipe, ingredients); err != nil {
		log.Errorf("Failed to insert recipe %s: %v", recipe.ID, err)
		return domain.CreateRecipeResponse{}, fmt.Errorf("create recipe: %w", err)
	}

	log.Infof("Recipe created with id %s", recipe.ID)
	return domain.CreateRecipeResponse{ID: recipe.ID}, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe == nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	ingredients, err := s.recipeRepository.GetIngredientsByRecipeID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.toResponse(*recipe, ingredients), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipesRequest) ([]domain.RecipeResponse, error) {
	rows, err := s.recipeRepository.GetRecipesWithIngredients(ctx)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.RecipeResponse, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, s.toResponse(row.Recipe, row.Ingredients))
	}

	return search.RankAndPaginate(recipes, recipeDocument, req.Query, req.Offset, req.Limit), nil
}

func (s *recipeService) CountRecipes(ctx context.Context) (int64, error) {
	return s.recipeRepository.CountRecipes(ctx)
}

func (s *recipeService) toResponse(recipe entities.Recipe, ingredients []entities.Ingredient) domain.RecipeResponse {
	titles := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		titles = append(titles, ingredient.Title)
	}

	res := domain.RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		Rating:      recipe.Rating,
		Time:        recipe.Time,
		Cost:        recipe.Cost,
		Ingredients: titles,
	}
	if name, ok := s.assetStore.Exists(recipe.ID); ok {
		res.Image = &name
	}
	return res
}

func recipeDocument(r domain.RecipeResponse) string {
	return search.BuildDocument(r.Title, r.Description, r.Ingredients)
}
