package domain

import (
	"errors"
)

var (
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUploadImage     = "failed to upload image, recipe not created"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSearchRecipes   = "failed to search recipes"

	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrDuplicateRecipe      = errors.New("more than one recipe stored under the same id")
	ErrMissingSearchQuery   = errors.New("query parameter is required")
	ErrInvalidImageEncoding = errors.New("image is not valid base64")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrImageIO              = errors.New("failed to write image")
)

type (
	CreateRecipeRequest struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Rating      int      `json:"rating" validate:"min=0,max=5"`
		Time        int      `json:"time" validate:"min=0"`
		Cost        float64  `json:"cost" validate:"min=0"`
		Ingredients []string `json:"ingredients"`
		ImageBlob   *string  `json:"image_blob,omitempty"`
	}

	CreateRecipeResponse struct {
		ID string `json:"id"`
	}

	SearchRecipesRequest struct {
		Query  string
		Offset int // 0 means unset
		Limit  int // 0 means unset
	}

	// RecipeResponse is the single representation returned by create, detail
	// and search endpoints. Image is null when no image was uploaded.
	RecipeResponse struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Rating      int      `json:"rating"`
		Time        int      `json:"time"`
		Cost        float64  `json:"cost"`
		Ingredients []string `json:"ingredients"`
		Image       *string  `json:"image"`
	}
)
