// Package usecase implements the read path for market indices.
package usecase

import (
	"context"
	"strings"

	"thaivest_backend/internal/feature/indices/domain/entity"
	"thaivest_backend/internal/platform/cache"
)

// Component is one index membership joined with its stock's display fields.
type Component struct {
	Symbol string   `json:"symbol"`
	Name   string   `json:"name"`
	Sector *string  `json:"sector"`
	Weight *float64 `json:"weight"`
}

// IndexRepository abstracts the indices and index_components tables.
// Interfaces are defined by the consumer (usecase), not the provider.
type IndexRepository interface {
	List(ctx context.Context) ([]entity.Index, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Index, error)
	ListComponents(ctx context.Context, indexSymbol string, offset, limit int, q ComponentQuery) ([]Component, int64, error)
}

// ComponentQuery carries the filter and ordering of a components page.
type ComponentQuery struct {
	Sector string
	SortBy string // symbol, name or weight
	Order  string // asc or desc
	Search string
}

// Cache is the subset of the cache-aside store this feature needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, category string)
}

// ComponentsResult is the payload cached and returned by Components.
type ComponentsResult struct {
	Components []Component `json:"components"`
	Total      int64       `json:"total"`
}

// IndicesUsecase serves index listings and component pages.
type IndicesUsecase struct {
	repo  IndexRepository
	cache Cache
}

// NewIndicesUsecase wires the feature with its collaborators.
func NewIndicesUsecase(repo IndexRepository, c Cache) *IndicesUsecase {
	return &IndicesUsecase{repo: repo, cache: c}
}

// List returns all known indices.
func (u *IndicesUsecase) List(ctx context.Context) ([]entity.Index, error) {
	key := cache.IndexListKey()

	var cached []entity.Index
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	indices, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, key, indices, "index")
	return indices, nil
}

// Get returns one index by symbol.
func (u *IndicesUsecase) Get(ctx context.Context, symbol string) (*entity.Index, error) {
	return u.repo.FindBySymbol(ctx, strings.ToUpper(symbol))
}

// Components returns one page of an index's membership. Membership changes
// rarely, so pages are cached for a day per filter combination.
func (u *IndicesUsecase) Components(ctx context.Context, symbol string, page, perPage int, q ComponentQuery) (*ComponentsResult, error) {
	symbol = strings.ToUpper(symbol)
	if _, err := u.repo.FindBySymbol(ctx, symbol); err != nil {
		return nil, err
	}

	q = normalizeQuery(q)
	key := cache.IndexComponentsPageKey(symbol, page, perPage, q.Sector, q.SortBy, q.Order, q.Search)

	var cached ComponentsResult
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	components, total, err := u.repo.ListComponents(ctx, symbol, (page-1)*perPage, perPage, q)
	if err != nil {
		return nil, err
	}

	res := &ComponentsResult{Components: components, Total: total}
	u.cache.Set(ctx, key, res, "index_components")
	return res, nil
}

// normalizeQuery whitelists the sort column and direction so caller input
// never reaches the SQL layer unchecked. Weight sorts descending by default,
// name columns ascending.
func normalizeQuery(q ComponentQuery) ComponentQuery {
	switch q.SortBy {
	case "symbol", "name", "weight":
	default:
		q.SortBy = "weight"
	}
	switch strings.ToLower(q.Order) {
	case "asc":
		q.Order = "asc"
	case "desc":
		q.Order = "desc"
	default:
		if q.SortBy == "weight" {
			q.Order = "desc"
		} else {
			q.Order = "asc"
		}
	}
	return q
}
