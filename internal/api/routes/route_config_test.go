package routes

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/pkg/asset"
	"recipe-catalog/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
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

	utils.InitValidator()
	assets := asset.NewAssetStore(t.TempDir(), nil)
	svc := recipe.NewRecipeService(recipe.NewRecipeRepository(db), assets)

	app := fiber.New()
	cfg := Config{
		App:           app,
		RecipeHandler: handlers.NewRecipeHandler(svc, utils.Validate),
		HealthHandler: handlers.NewHealthHandler(svc),
		Middleware:    middleware.NewMiddleware(),
		ImagesDir:     assets.Dir(),
	}
	cfg.Setup()
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func soupBody() map[string]any {
	return map[string]any{
		"title":       "Soup",
		"description": "Warm soup",
		"rating":      4,
		"time":        30,
		"cost":        5.5,
		"ingredients": []string{"Water", "Salt"},
	}
}

func createRecipe(t *testing.T, app *fiber.App, body map[string]any) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/recipe", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[domain.CreateRecipeResponse](t, resp)
	require.Len(t, created.ID, utils.RecipeIDLength)
	return created.ID
}

func TestCreateGetSearch(t *testing.T) {
	app := newTestApp(t)
	id := createRecipe(t, app, soupBody())

	resp := doJSON(t, app, fiber.MethodGet, "/recipe/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw := decode[map[string]any](t, resp)
	assert.Equal(t, id, raw["id"])
	assert.Equal(t, "Soup", raw["title"])
	assert.Equal(t, "Warm soup", raw["description"])
	assert.EqualValues(t, 4, raw["rating"])
	assert.EqualValues(t, 30, raw["time"])
	assert.EqualValues(t, 5.5, raw["cost"])
	assert.Equal(t, []any{"Water", "Salt"}, raw["ingredients"])
	imageRef, present := raw["image"]
	assert.True(t, present, "image is always present")
	assert.Nil(t, imageRef)

	resp = doJSON(t, app, fiber.MethodGet, "/recipes?query=soup", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	results := decode[[]domain.RecipeResponse](t, resp)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ID)
}

func TestGetRecipe_NotFound(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/recipe/doesNotExist", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateRecipe_InvalidImagePersistsNothing(t *testing.T) {
	app := newTestApp(t)

	body := soupBody()
	body["image_blob"] = "this is not base64!"
	resp := doJSON(t, app, fiber.MethodPost, "/recipe", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body["image_blob"] = base64.StdEncoding.EncodeToString([]byte("valid base64, not an image"))
	resp = doJSON(t, app, fiber.MethodPost, "/recipe", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/recipes?query=", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]domain.RecipeResponse](t, resp))
}

func TestCreateRecipe_WithImageIsServed(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	body := soupBody()
	body["image_blob"] = base64.StdEncoding.EncodeToString(buf.Bytes())
	id := createRecipe(t, app, body)

	resp := doJSON(t, app, fiber.MethodGet, "/recipe/"+id, nil)
	got := decode[domain.RecipeResponse](t, resp)
	require.NotNil(t, got.Image)
	assert.Equal(t, id+".jpeg", *got.Image)

	resp = doJSON(t, app, fiber.MethodGet, "/images/"+*got.Image, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateRecipe_BadRequests(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/recipe", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := soupBody()
	body["rating"] = 9
	resp = doJSON(t, app, fiber.MethodPost, "/recipe", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = soupBody()
	body["cost"] = -1
	resp = doJSON(t, app, fiber.MethodPost, "/recipe", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = soupBody()
	body["rating"] = "four"
	resp = doJSON(t, app, fiber.MethodPost, "/recipe", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateRecipe_AcceptsEmptyTextFields(t *testing.T) {
	app := newTestApp(t)

	body := soupBody()
	delete(body, "title")
	body["ingredients"] = []string{"", "Salt"}
	id := createRecipe(t, app, body)

	resp := doJSON(t, app, fiber.MethodGet, "/recipe/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[domain.RecipeResponse](t, resp)
	assert.Empty(t, got.Title)
	assert.Equal(t, []string{"", "Salt"}, got.Ingredients)
}

func TestSearchRecipes_Pagination(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 4; i++ {
		createRecipe(t, app, soupBody())
	}

	tests := []struct {
		target string
		want   int
	}{
		{"/recipes?query=soup", 4},
		{"/recipes?query=soup&limit=2", 2},
		{"/recipes?query=soup&offset=3", 1},
		{"/recipes?query=soup&offset=4", 0},
		{"/recipes?query=soup&offset=10&limit=2", 0},
		{"/recipes?query=soup&offset=2&limit=10", 2},
		{"/recipes?query=soup&limit=0", 4},
		{"/recipes?query=soup&limit=-3&offset=abc", 4},
		{"/recipes?query=pizza", 0},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp := doJSON(t, app, fiber.MethodGet, tt.target, nil)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			results := decode[[]domain.RecipeResponse](t, resp)
			assert.Len(t, results, tt.want)
			assert.NotNil(t, results, "empty results are an empty array, not null")
		})
	}
}

func TestSearchRecipes_MissingQuery(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/recipes", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/recipes?query=", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	createRecipe(t, app, soupBody())

	resp := doJSON(t, app, fiber.MethodGet, "/api/ping", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.EqualValues(t, 1, body["recipes"])
}
