// Package usecase implements the read path for market quotes.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/platform/cache"
	"thaivest_backend/internal/shared/trend"
)

// QuoteProvider fetches point-in-time market data from the external source.
// Interfaces are defined by the consumer (usecase), not the provider.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetHistory(ctx context.Context, symbol, period string) ([]entity.PriceBar, error)
	BatchGetQuotes(ctx context.Context, symbols []string) (map[string]*entity.Quote, error)
}

// LatestQuoteRepository abstracts the latest_quotes table.
type LatestQuoteRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.LatestQuote, error)
	Upsert(ctx context.Context, row *entity.LatestQuote) error
}

// PriceHistoryRepository abstracts the historical price tables.
type PriceHistoryRepository interface {
	UpsertBatch(ctx context.Context, symbolType string, bars []entity.PriceBar) error
}

// Cache is the subset of the cache-aside store the read path needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, category string)
}

// QuoteResult is the response shape of the quote endpoints. UpdatedAt is set
// only when the quote came from a stored row.
type QuoteResult struct {
	entity.Quote
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// QuotesUsecase orchestrates the cache → database → provider read path.
type QuotesUsecase struct {
	provider QuoteProvider
	quotes   LatestQuoteRepository
	history  PriceHistoryRepository
	cache    Cache
}

// NewQuotesUsecase wires the read path with its collaborators.
func NewQuotesUsecase(provider QuoteProvider, quotes LatestQuoteRepository, history PriceHistoryRepository, c Cache) *QuotesUsecase {
	return &QuotesUsecase{provider: provider, quotes: quotes, history: history, cache: c}
}

// GetQuote returns the latest quote for a symbol: cache first, then the
// stored row, then a provider fetch that is persisted for the next reader.
// symbolType tags rows created by the lazy path ("stock" or "etf").
func (u *QuotesUsecase) GetQuote(ctx context.Context, symbol, symbolType string) (*QuoteResult, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.QuoteKey(symbol)

	var cached QuoteResult
	if u.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	row, err := u.quotes.FindBySymbol(ctx, symbol)
	switch {
	case err == nil:
		res := resultFromRow(row)
		u.cache.Set(ctx, key, res, "quote")
		return res, nil
	case !errors.Is(err, domain.ErrSymbolNotFound):
		return nil, err
	}

	q, err := u.provider.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	newRow := entity.FromQuote(q, symbolType)
	if err := u.quotes.Upsert(ctx, &newRow); err != nil {
		// The fetched quote is still good for this response; the next sync
		// cycle will persist it.
		slog.Error("failed to persist lazily fetched quote", "symbol", symbol, "error", err)
	}

	res := &QuoteResult{Quote: *q}
	u.cache.Set(ctx, key, res, "quote")
	return res, nil
}

// GetHistory fetches OHLCV history from the provider and upserts it into the
// historical price table keyed by (symbol, date).
func (u *QuotesUsecase) GetHistory(ctx context.Context, symbol, symbolType, period string) ([]entity.PriceBar, error) {
	symbol = strings.ToUpper(symbol)

	bars, err := u.provider.GetHistory(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	if len(bars) > 0 {
		if err := u.history.UpsertBatch(ctx, symbolType, bars); err != nil {
			slog.Error("failed to persist price history", "symbol", symbol, "error", err)
		}
	}
	return bars, nil
}

// resultFromRow shapes a stored row for the response. The trend label is
// recomputed with the shared classifier so a stale stored label can never
// drift from the stored price and averages.
func resultFromRow(row *entity.LatestQuote) *QuoteResult {
	updated := row.UpdatedAt
	return &QuoteResult{
		Quote: entity.Quote{
			Symbol:        row.Symbol,
			Price:         row.Price,
			ChangeAmount:  row.ChangeAmount,
			ChangePercent: row.ChangePercent,
			OpenPrice:     row.OpenPrice,
			HighPrice:     row.HighPrice,
			LowPrice:      row.LowPrice,
			Volume:        row.Volume,
			MarketCap:     row.MarketCap,
			PERatio:       row.PERatio,
			EPS:           row.EPS,
			Week52High:    row.Week52High,
			Week52Low:     row.Week52Low,
			AvgVolume10D:  row.AvgVolume10D,
			DividendYield: row.DividendYield,
			SMA50:         row.SMA50,
			SMA200:        row.SMA200,
			Trend:         trend.Classify(row.Price, row.SMA50, row.SMA200),
		},
		UpdatedAt: &updated,
	}
}
