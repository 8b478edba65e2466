// Package config loads application-level settings from environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds process-wide settings that do not belong to a single adapter.
type Config struct {
	Port           string   // HTTP listen port
	AdminAPIKey    string   // shared secret for the X-Admin-Key header
	AllowedOrigins []string // CORS origins
	Environment    string   // "development" or "production"
}

// Load reads configuration from environment variables, applying development
// defaults where unset.
func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		AdminAPIKey: getenv("ADMIN_API_KEY", "dev-secret-key"),
		Environment: getenv("ENVIRONMENT", "development"),
	}
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
