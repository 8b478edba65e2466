// Package di provides dependency injection factories for creating
// application components.
package di

import (
	infrahttp "thaivest_backend/internal/platform/http"
	"thaivest_backend/internal/platform/yahoo"
	"thaivest_backend/internal/shared/ratelimiter"
)

// NewQuoteProvider creates a fully configured Yahoo Finance client with its
// HTTP client and rate limiter.
func NewQuoteProvider() *yahoo.Client {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit)
	return yahoo.NewClient(cfg, httpClient, limiter)
}
