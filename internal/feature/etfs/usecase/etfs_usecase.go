// Package usecase implements listing and lazy enrichment of ETFs.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"thaivest_backend/internal/feature/etfs/domain"
	"thaivest_backend/internal/feature/etfs/domain/entity"
	"thaivest_backend/internal/platform/cache"
)

// ETFRepository abstracts the etfs and etf_holdings tables.
// Interfaces are defined by the consumer (usecase), not the provider.
type ETFRepository interface {
	List(ctx context.Context, offset, limit int, category string) ([]entity.ETF, int64, error)
	TopByAUM(ctx context.Context, limit int) ([]entity.ETF, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.ETF, error)
	Create(ctx context.Context, etf *entity.ETF) error
	Update(ctx context.Context, etf *entity.ETF) error
	ListSymbols(ctx context.Context) ([]string, error)
	ListHoldings(ctx context.Context, etfSymbol string) ([]entity.ETFHolding, error)
	ReplaceHoldings(ctx context.Context, etfSymbol string, holdings []entity.ETFHolding) error
}

// FundProvider fetches descriptive fund records from the external source.
type FundProvider interface {
	GetFundProfile(ctx context.Context, symbol string) (*entity.FundProfile, error)
}

// Cache is the subset of the cache-aside store this feature needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, category string)
}

// ListResult is the payload cached and returned by List.
type ListResult struct {
	ETFs  []entity.ETF `json:"etfs"`
	Total int64        `json:"total"`
}

// ETFsUsecase serves ETF listings, detail pages and holdings.
type ETFsUsecase struct {
	repo     ETFRepository
	provider FundProvider
	cache    Cache
}

// NewETFsUsecase wires the feature with its collaborators.
func NewETFsUsecase(repo ETFRepository, provider FundProvider, c Cache) *ETFsUsecase {
	return &ETFsUsecase{repo: repo, provider: provider, cache: c}
}

// List returns one page of active ETFs, optionally filtered by category.
func (u *ETFsUsecase) List(ctx context.Context, page, perPage int, category string) (*ListResult, error) {
	key := cache.ETFListKey(page, perPage, category)

	var cached ListResult
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	etfs, total, err := u.repo.List(ctx, (page-1)*perPage, perPage, category)
	if err != nil {
		return nil, err
	}

	res := &ListResult{ETFs: etfs, Total: total}
	u.cache.Set(ctx, key, res, "etf")
	return res, nil
}

// Top50 returns the fifty largest ETFs by assets under management.
func (u *ETFsUsecase) Top50(ctx context.Context) ([]entity.ETF, error) {
	key := cache.ETFTop50Key()

	var cached []entity.ETF
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	etfs, err := u.repo.TopByAUM(ctx, 50)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, key, etfs, "etf")
	return etfs, nil
}

// Get returns one ETF by symbol. An unknown symbol triggers a provider
// lookup and, on success, a new row plus its reported holdings.
func (u *ETFsUsecase) Get(ctx context.Context, symbol string) (*entity.ETF, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.ETFKey(symbol)

	var cached entity.ETF
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	etf, err := u.repo.FindBySymbol(ctx, symbol)
	switch {
	case err == nil:
		u.cache.Set(ctx, key, etf, "etf")
		return etf, nil
	case !errors.Is(err, domain.ErrETFNotFound):
		return nil, err
	}

	profile, err := u.provider.GetFundProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	etf = fromFundProfile(profile)
	if err := u.repo.Create(ctx, etf); err != nil {
		slog.Error("failed to persist discovered etf", "symbol", symbol, "error", err)
	} else if holdings := holdingsFromProfile(profile); len(holdings) > 0 {
		if err := u.repo.ReplaceHoldings(ctx, symbol, holdings); err != nil {
			slog.Error("failed to persist etf holdings", "symbol", symbol, "error", err)
		}
	}

	u.cache.Set(ctx, key, etf, "etf")
	return etf, nil
}

// Holdings returns the stored positions of an ETF, fetching them from the
// provider on first access.
func (u *ETFsUsecase) Holdings(ctx context.Context, symbol string) ([]entity.ETFHolding, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.ETFHoldingsKey(symbol)

	var cached []entity.ETFHolding
	if u.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	if _, err := u.Get(ctx, symbol); err != nil {
		return nil, err
	}

	holdings, err := u.repo.ListHoldings(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if len(holdings) == 0 {
		profile, err := u.provider.GetFundProfile(ctx, symbol)
		if err != nil {
			return nil, err
		}
		holdings = holdingsFromProfile(profile)
		if len(holdings) > 0 {
			if err := u.repo.ReplaceHoldings(ctx, symbol, holdings); err != nil {
				slog.Error("failed to persist etf holdings", "symbol", symbol, "error", err)
			}
		}
	}

	u.cache.Set(ctx, key, holdings, "etf_holdings")
	return holdings, nil
}

func fromFundProfile(p *entity.FundProfile) *entity.ETF {
	return &entity.ETF{
		Symbol:       p.Symbol,
		Name:         p.Name,
		Category:     p.Category,
		ExpenseRatio: p.ExpenseRatio,
		AUM:          p.AUM,
		Description:  p.Description,
		IsActive:     true,
	}
}

func holdingsFromProfile(p *entity.FundProfile) []entity.ETFHolding {
	holdings := make([]entity.ETFHolding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		holdings = append(holdings, entity.ETFHolding{
			ETFSymbol:     p.Symbol,
			HoldingSymbol: h.Symbol,
			HoldingName:   h.Name,
			Weight:        h.Weight,
			Shares:        h.Shares,
		})
	}
	return holdings
}
