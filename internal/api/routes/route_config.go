package routes

import (
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	HealthHandler handlers.HealthHandler
	Middleware    middleware.Middleware
	ImagesDir     string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.RecoverMiddleware())
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Images()
	c.GuestRoute()
}

func (c *Config) Recipes() {
	c.App.Post("/recipe", c.RecipeHandler.CreateRecipe)
	c.App.Get("/recipe/:id", c.RecipeHandler.GetRecipeByID)
	c.App.Get("/recipes", c.RecipeHandler.SearchRecipes)
}

func (c *Config) Images() {
	if c.ImagesDir == "" {
		return
	}
	c.App.Static("/images", c.ImagesDir, fiber.Static{
		Browse: false,
	})
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", c.HealthHandler.Ping)
}
