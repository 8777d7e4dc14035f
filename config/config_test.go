package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NUTRISCOPE_RAWINGREDIENT_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "https://world.openfoodfacts.org", cfg.Branded.BaseURL)
	assert.Equal(t, 8*time.Second, cfg.Branded.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Branded.CacheTTL)

	assert.Equal(t, "test-key", cfg.RawIngredient.APIKey)
	assert.Equal(t, "https://api.nal.usda.gov/fdc", cfg.RawIngredient.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RawIngredient.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.RawIngredient.CacheTTL)

	assert.Equal(t, 5, cfg.Aggregator.MinFoodResults)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("NUTRISCOPE_RAWINGREDIENT_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NUTRISCOPE_RAWINGREDIENT_API_KEY", "test-key")
	t.Setenv("NUTRISCOPE_SERVER_PORT", "9090")
	t.Setenv("NUTRISCOPE_BRANDED_CACHE_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Branded.CacheTTL)
}
