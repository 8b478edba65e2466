// Package usecase implements listing and lazy enrichment of stocks.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"thaivest_backend/internal/feature/stocks/domain"
	"thaivest_backend/internal/feature/stocks/domain/entity"
	"thaivest_backend/internal/platform/cache"
)

// StockRepository abstracts the stocks table.
// Interfaces are defined by the consumer (usecase), not the provider.
type StockRepository interface {
	List(ctx context.Context, offset, limit int, sector, search string) ([]entity.Stock, int64, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	Create(ctx context.Context, stock *entity.Stock) error
	Update(ctx context.Context, stock *entity.Stock) error
	ListSymbols(ctx context.Context) ([]string, error)
	ListMissingProfile(ctx context.Context) ([]entity.Stock, error)
}

// ProfileProvider fetches descriptive company records from the external source.
type ProfileProvider interface {
	GetProfile(ctx context.Context, symbol string) (*entity.Profile, error)
}

// Cache is the subset of the cache-aside store this feature needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, category string)
}

// ListResult is the payload cached and returned by List.
type ListResult struct {
	Stocks []entity.Stock `json:"stocks"`
	Total  int64          `json:"total"`
}

// StocksUsecase serves stock listings and detail pages.
type StocksUsecase struct {
	repo     StockRepository
	provider ProfileProvider
	cache    Cache
}

// NewStocksUsecase wires the feature with its collaborators.
func NewStocksUsecase(repo StockRepository, provider ProfileProvider, c Cache) *StocksUsecase {
	return &StocksUsecase{repo: repo, provider: provider, cache: c}
}

// List returns one page of active stocks, optionally filtered by sector and
// a symbol/name search term. Pages are cached per filter combination.
func (u *StocksUsecase) List(ctx context.Context, page, perPage int, sector, search string) (*ListResult, error) {
	key := cache.StockListKey(page, perPage, sector, search)

	var cached ListResult
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	stocks, total, err := u.repo.List(ctx, (page-1)*perPage, perPage, sector, search)
	if err != nil {
		return nil, err
	}

	res := &ListResult{Stocks: stocks, Total: total}
	u.cache.Set(ctx, key, res, "stock")
	return res, nil
}

// Get returns one stock by symbol. A stored row missing its profile fields
// is enriched from the provider on first read; an unknown symbol triggers a
// provider lookup and, on success, a new row. Enrichment failures degrade to
// the bare row instead of failing the request.
func (u *StocksUsecase) Get(ctx context.Context, symbol string) (*entity.Stock, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.StockKey(symbol)

	var cached entity.Stock
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	stock, err := u.repo.FindBySymbol(ctx, symbol)
	switch {
	case err == nil:
		if !stock.HasProfile() {
			u.enrich(ctx, stock)
		}
		// Stored rows may predate logo derivation; fill it at read time.
		if stock.LogoURL == nil && stock.Website != nil {
			stock.LogoURL = LogoFromWebsite(*stock.Website)
		}
		u.cache.Set(ctx, key, stock, "stock")
		return stock, nil
	case !errors.Is(err, domain.ErrStockNotFound):
		return nil, err
	}

	profile, err := u.provider.GetProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	stock = &entity.Stock{Symbol: symbol, Country: "USA", IsActive: true}
	ApplyProfile(stock, profile)
	if err := u.repo.Create(ctx, stock); err != nil {
		// The fetched record still serves this response; a later read or
		// sync will persist it.
		slog.Error("failed to persist discovered stock", "symbol", symbol, "error", err)
	}

	u.cache.Set(ctx, key, stock, "stock")
	return stock, nil
}

// enrich fills profile fields from the provider, best effort.
func (u *StocksUsecase) enrich(ctx context.Context, stock *entity.Stock) {
	profile, err := u.provider.GetProfile(ctx, stock.Symbol)
	if err != nil {
		slog.Warn("profile enrichment skipped", "symbol", stock.Symbol, "error", err)
		return
	}
	ApplyProfile(stock, profile)
	if err := u.repo.Update(ctx, stock); err != nil {
		slog.Error("failed to persist enriched profile", "symbol", stock.Symbol, "error", err)
	}
}

// ApplyProfile copies provider fields onto a stock row. Translated fields
// (NameTH, DescriptionTH) are managed separately and never touched here.
func ApplyProfile(stock *entity.Stock, p *entity.Profile) {
	if p.Name != "" {
		stock.Name = p.Name
	}
	if p.Sector != nil {
		stock.Sector = p.Sector
	}
	if p.Industry != nil {
		stock.Industry = p.Industry
	}
	if p.Description != nil {
		stock.Description = p.Description
	}
	if p.Website != nil {
		stock.Website = p.Website
	}
	if p.Exchange != nil {
		stock.Exchange = p.Exchange
	}
	if p.Country != nil {
		stock.Country = *p.Country
	}
	if p.CEO != nil {
		stock.CEO = p.CEO
	}
	if p.Employees != nil {
		stock.Employees = p.Employees
	}
	if p.Headquarters != nil {
		stock.Headquarters = p.Headquarters
	}
	if stock.LogoURL == nil && stock.Website != nil {
		stock.LogoURL = LogoFromWebsite(*stock.Website)
	}
}

// LogoFromWebsite derives a Clearbit logo URL from the company website:
// the scheme is stripped and the host is everything up to the first path
// separator. Scheme-less values like "apple.com/investor" are accepted.
func LogoFromWebsite(website string) *string {
	host := strings.TrimPrefix(website, "https://")
	host = strings.TrimPrefix(host, "http://")
	host, _, _ = strings.Cut(host, "/")
	if host == "" {
		return nil
	}
	logo := "https://logo.clearbit.com/" + host
	return &logo
}
