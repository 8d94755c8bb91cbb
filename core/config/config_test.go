package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 5, cfg.Planner.PostsPerDate)
	assert.Equal(t, 5, cfg.Planner.DateCount)
	assert.Equal(t, int64(500), cfg.Planner.MinFollowersK)
	assert.Equal(t, 10*time.Minute, cfg.Export.CacheTTL)
	assert.False(t, cfg.Database.ValkeyEnabled)
	assert.Same(t, cfg, Global)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("APP_DEBUG", "on")
	t.Setenv("PLANNER_POSTS_PER_DATE", "7")
	t.Setenv("PLANNER_MIN_FOLLOWERS_K", "0")
	t.Setenv("VALKEY_ENABLED", "true")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 7, cfg.Planner.PostsPerDate)
	assert.Equal(t, int64(0), cfg.Planner.MinFollowersK)
	assert.True(t, cfg.Database.ValkeyEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CorsAllowedOrigins)
	assert.Equal(t, 7, GetAllSettings()["planner_posts_per_date"])
}
