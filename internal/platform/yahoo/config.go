// Package yahoo provides the quote provider adapter over the Yahoo Finance
// JSON API (quoteSummary and chart endpoints).
package yahoo

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the public query endpoint.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL   string        // Base URL for the API
	RateLimit int           // Max outbound calls per second
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads the provider configuration from environment variables,
// falling back to the public endpoint and 5 calls per second.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("YAHOO_BASE_URL"),
		RateLimit: 5,
		Timeout:   10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v := os.Getenv("YAHOO_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit = n
		}
	}
	return cfg
}
