// Package usecase implements symbol and name search across stocks and ETFs.
package usecase

import (
	"context"
	"strings"

	"thaivest_backend/internal/platform/cache"
)

const maxResults = 20

// Result is one search hit. Type is "stock" or "etf".
type Result struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	NameTH *string `json:"name_th"`
	Type   string  `json:"type"`
}

// SearchRepository runs the combined lookup across both instrument tables.
// Interfaces are defined by the consumer (usecase), not the provider.
type SearchRepository interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Cache is the subset of the cache-aside store this feature needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, category string)
}

// SearchUsecase serves the search endpoint.
type SearchUsecase struct {
	repo  SearchRepository
	cache Cache
}

// NewSearchUsecase wires the feature with its collaborators.
func NewSearchUsecase(repo SearchRepository, c Cache) *SearchUsecase {
	return &SearchUsecase{repo: repo, cache: c}
}

// Search returns up to twenty instruments matching the query by symbol,
// name or Thai name. Queries are trimmed and matched case-insensitively; an
// empty query yields an empty result without touching storage.
func (u *SearchUsecase) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	key := cache.SearchKey(query)
	var cached []Result
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	results, err := u.repo.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []Result{}
	}

	u.cache.Set(ctx, key, results, "search")
	return results, nil
}
