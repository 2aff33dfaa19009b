package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/storage"
	"recipe-catalog/pkg/asset"
	"recipe-catalog/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	output, err := accessLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     output,
	}))

	if max, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX")); err == nil && max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        max,
			Expiration: 1 * time.Second,
		}))
	}

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		return nil, err
	}
	imagesDir := utils.GetConfig("IMAGES_DIR")
	if info, err := os.Stat(imagesDir); err != nil || !info.IsDir() {
		log.Warnf("Images directory %s is missing, image uploads will fail", imagesDir)
	}
	assetStore := asset.NewAssetStore(imagesDir, s3)

	// Repository
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	recipeService := recipe.NewRecipeService(recipeRepository, assetStore)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	healthHandler := handlers.NewHealthHandler(recipeService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		HealthHandler: healthHandler,
		Middleware:    middlewares,
		ImagesDir:     assetStore.Dir(),
	}
	routesConfig.Setup()
	return app, nil
}

func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
}
