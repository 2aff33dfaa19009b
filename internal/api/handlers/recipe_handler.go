package handlers

import (
	"errors"
	"strconv"

	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeByID(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req)
	if err != nil {
		if isImageError(err) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) GetRecipeByID(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeByID(c.UserContext(), recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	if !c.Context().QueryArgs().Has("query") {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, domain.ErrMissingSearchQuery)
	}

	req := domain.SearchRecipesRequest{
		Query:  c.Query("query"),
		Offset: positiveQueryInt(c, "offset"),
		Limit:  positiveQueryInt(c, "limit"),
	}

	res, err := h.recipeService.SearchRecipes(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

// positiveQueryInt returns 0 (unset) for missing, malformed or non-positive values.
func positiveQueryInt(c *fiber.Ctx, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return 0
	}
	return value
}

func isImageError(err error) bool {
	return errors.Is(err, domain.ErrInvalidImageEncoding) ||
		errors.Is(err, domain.ErrInvalidImageFormat) ||
		errors.Is(err, domain.ErrImageIO)
}
