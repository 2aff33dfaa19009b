package utils

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlSafeBase64 = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func TestGenerateRecipeID_Shape(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GenerateRecipeID()
		require.Len(t, id, RecipeIDLength)
		assert.Regexp(t, urlSafeBase64, id)

		raw, err := base64.RawURLEncoding.DecodeString(id)
		require.NoError(t, err)
		assert.Len(t, raw, 8)
	}
}

func TestGetConfig_Defaults(t *testing.T) {
	config = defaultConfig()
	t.Cleanup(func() { config = defaultConfig() })

	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "recipes.sqlite", GetConfig("DB_FILE"))
	assert.Equal(t, "./images", GetConfig("IMAGES_DIR"))
	assert.Equal(t, "8080", GetConfig("PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	config = defaultConfig()
	t.Cleanup(func() { config = defaultConfig() })

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	yamlBody := "DB_FILE: catalog.db\nIMAGES_DIR: /srv/images\nPORT: \"9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o644))
	t.Setenv("PORT", "9100")

	LoadConfig()

	assert.Equal(t, "catalog.db", GetConfig("DB_FILE"))
	assert.Equal(t, "/srv/images", GetConfig("IMAGES_DIR"))
	assert.Equal(t, "9100", GetConfig("PORT"))
	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
}

func TestInitValidator_Idempotent(t *testing.T) {
	InitValidator()
	first := Validate
	InitValidator()
	assert.Same(t, first, Validate)
}
