package config

import (
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Planner  PlannerConfig
	Export   ExportConfig
	Database DatabaseConfig
	MCP      MCPConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasePath           string
	BaseUrl            string
	CorsAllowedOrigins []string
	TrustedProxies     []string
}

// PlannerConfig holds the defaults a fresh planner session starts with.
type PlannerConfig struct {
	PostsPerDate    int
	DateCount       int
	MinFollowersK   int64 // follower floor in thousands, as shown on the sidebar slider
	RandomSeed      int64 // 0 picks a time based seed
	RateLimitPerMin int
}

type ExportConfig struct {
	Dir      string
	CacheTTL time.Duration
}

type DatabaseConfig struct {
	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

type MCPConfig struct {
	Port string
	Host string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	debug := getEnvBool("APP_DEBUG", false)

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		corsOrigins = splitList(v)
	}

	appCfg := AppConfig{
		Version:            "v1.0.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: corsOrigins,
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = splitList(v)
	}

	plannerCfg := PlannerConfig{
		PostsPerDate:    getEnvInt("PLANNER_POSTS_PER_DATE", 5),
		DateCount:       getEnvInt("PLANNER_DATE_COUNT", 5),
		MinFollowersK:   getEnvInt64("PLANNER_MIN_FOLLOWERS_K", 500),
		RandomSeed:      getEnvInt64("PLANNER_SEED", 0),
		RateLimitPerMin: getEnvInt("PLANNER_RATE_LIMIT_PER_MIN", 1000),
	}

	exportCfg := ExportConfig{
		Dir:      getEnv("EXPORT_DIR", "exports"),
		CacheTTL: time.Duration(getEnvInt("EXPORT_CACHE_TTL_SECONDS", 600)) * time.Second,
	}

	dbCfg := DatabaseConfig{
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "planner:"),
	}

	cfg := &Config{
		App:      appCfg,
		Planner:  plannerCfg,
		Export:   exportCfg,
		Database: dbCfg,
		MCP:      MCPConfig{Port: getEnv("MCP_PORT", "8080"), Host: getEnv("MCP_HOST", "localhost")},
	}

	Global = cfg
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
