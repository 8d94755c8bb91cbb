package config

import (
	"os"
	"strconv"
	"strings"
)

// GetAllSettings returns the effective runtime settings, logged at startup in debug mode.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":             Global.App.Version,
		"app_debug":               Global.App.Debug,
		"planner_posts_per_date":  Global.Planner.PostsPerDate,
		"planner_date_count":      Global.Planner.DateCount,
		"planner_min_followers_k": Global.Planner.MinFollowersK,
		"export_cache_ttl":        Global.Export.CacheTTL.String(),
		"valkey_enabled":          Global.Database.ValkeyEnabled,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}
