package handlers

import (
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	HealthHandler interface {
		Ping(c *fiber.Ctx) error
	}

	healthHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewHealthHandler(recipeService recipe.RecipeService) HealthHandler {
	return &healthHandler{recipeService: recipeService}
}

func (h *healthHandler) Ping(c *fiber.Ctx) error {
	count, err := h.recipeService.CountRecipes(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"message": domain.MessageSuccessPing,
		"recipes": count,
	}, fiber.StatusOK)
}
