package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/shared/trend"
)

func f64(v float64) *float64 { return &v }

type fakeCache struct {
	data       map[string][]byte
	categories map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, categories: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, category string) {
	raw, _ := json.Marshal(value)
	c.data[key] = raw
	c.categories[key] = category
}

type fakeQuoteRepo struct {
	rows        map[string]*entity.LatestQuote
	upserts     int
	upsertErr   error
	findErr     error
	lastUpsert  *entity.LatestQuote
}

func (r *fakeQuoteRepo) FindBySymbol(_ context.Context, symbol string) (*entity.LatestQuote, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, ok := r.rows[symbol]
	if !ok {
		return nil, domain.ErrSymbolNotFound
	}
	return row, nil
}

func (r *fakeQuoteRepo) Upsert(_ context.Context, row *entity.LatestQuote) error {
	r.upserts++
	r.lastUpsert = row
	return r.upsertErr
}

type fakeProvider struct {
	quotes   map[string]*entity.Quote
	err      error
	calls    int
	bars     []entity.PriceBar
	barsErr  error
}

func (p *fakeProvider) GetQuote(_ context.Context, symbol string) (*entity.Quote, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	q, ok := p.quotes[symbol]
	if !ok {
		return nil, domain.ErrSymbolNotFound
	}
	return q, nil
}

func (p *fakeProvider) GetHistory(_ context.Context, _, _ string) ([]entity.PriceBar, error) {
	return p.bars, p.barsErr
}

func (p *fakeProvider) BatchGetQuotes(_ context.Context, _ []string) (map[string]*entity.Quote, error) {
	return p.quotes, p.err
}

type fakeHistoryRepo struct {
	batches int
	err     error
}

func (r *fakeHistoryRepo) UpsertBatch(_ context.Context, _ string, _ []entity.PriceBar) error {
	r.batches++
	return r.err
}

func TestGetQuote_CacheHit(t *testing.T) {
	t.Parallel()

	c := newFakeCache()
	c.Set(context.Background(), "quote:AAPL", &QuoteResult{Quote: entity.Quote{Symbol: "AAPL", Price: f64(150)}}, "quote")
	repo := &fakeQuoteRepo{findErr: errors.New("must not be called")}
	provider := &fakeProvider{}

	u := NewQuotesUsecase(provider, repo, &fakeHistoryRepo{}, c)

	res, err := u.GetQuote(context.Background(), "aapl", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *res.Price != 150 {
		t.Errorf("expected cached price 150, got %v", *res.Price)
	}
	if provider.calls != 0 {
		t.Error("provider must not be called on a cache hit")
	}
}

func TestGetQuote_StoredRow(t *testing.T) {
	t.Parallel()

	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeQuoteRepo{rows: map[string]*entity.LatestQuote{
		"AAPL": {
			Symbol: "AAPL", SymbolType: "stock",
			Price: f64(150), SMA50: f64(145), SMA200: f64(140),
			Trend:     string(trend.Sideways), // stale label on purpose
			UpdatedAt: updated,
		},
	}}
	provider := &fakeProvider{}
	c := newFakeCache()

	u := NewQuotesUsecase(provider, repo, &fakeHistoryRepo{}, c)

	res, err := u.GetQuote(context.Background(), "AAPL", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Trend != trend.Uptrend {
		t.Errorf("expected trend recomputed to uptrend, got %s", res.Trend)
	}
	if res.UpdatedAt == nil || !res.UpdatedAt.Equal(updated) {
		t.Errorf("expected stored timestamp, got %v", res.UpdatedAt)
	}
	if provider.calls != 0 {
		t.Error("provider must not be called when a row exists")
	}
	if c.categories["quote:AAPL"] != "quote" {
		t.Error("expected response cached under the quote category")
	}
}

func TestGetQuote_LazyFetchPersistsAndCaches(t *testing.T) {
	t.Parallel()

	repo := &fakeQuoteRepo{rows: map[string]*entity.LatestQuote{}}
	provider := &fakeProvider{quotes: map[string]*entity.Quote{
		"MSFT": {Symbol: "MSFT", Price: f64(420), Trend: trend.Sideways},
	}}
	c := newFakeCache()

	u := NewQuotesUsecase(provider, repo, &fakeHistoryRepo{}, c)

	res, err := u.GetQuote(context.Background(), "msft", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *res.Price != 420 {
		t.Errorf("expected provider price, got %v", *res.Price)
	}
	if res.UpdatedAt != nil {
		t.Error("expected no stored timestamp on a fresh fetch")
	}
	if repo.upserts != 1 {
		t.Errorf("expected one upsert, got %d", repo.upserts)
	}
	if repo.lastUpsert.SymbolType != "stock" {
		t.Errorf("expected row tagged stock, got %s", repo.lastUpsert.SymbolType)
	}
	if _, ok := c.data["quote:MSFT"]; !ok {
		t.Error("expected quote cached after fetch")
	}
}

func TestGetQuote_UnknownSymbol(t *testing.T) {
	t.Parallel()

	repo := &fakeQuoteRepo{rows: map[string]*entity.LatestQuote{}}
	provider := &fakeProvider{quotes: map[string]*entity.Quote{}}
	c := newFakeCache()

	u := NewQuotesUsecase(provider, repo, &fakeHistoryRepo{}, c)

	_, err := u.GetQuote(context.Background(), "ZZZZ", "stock")
	if !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
	if len(c.data) != 0 {
		t.Error("failed lookups must not populate the cache")
	}
}

func TestGetQuote_PersistFailureStillServes(t *testing.T) {
	t.Parallel()

	repo := &fakeQuoteRepo{rows: map[string]*entity.LatestQuote{}, upsertErr: errors.New("db down")}
	provider := &fakeProvider{quotes: map[string]*entity.Quote{
		"MSFT": {Symbol: "MSFT", Price: f64(420)},
	}}
	c := newFakeCache()

	u := NewQuotesUsecase(provider, repo, &fakeHistoryRepo{}, c)

	res, err := u.GetQuote(context.Background(), "MSFT", "stock")
	if err != nil {
		t.Fatalf("expected quote despite persist failure, got %v", err)
	}
	if *res.Price != 420 {
		t.Errorf("expected provider price, got %v", *res.Price)
	}
}

func TestGetHistory_PersistsBars(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{bars: []entity.PriceBar{
		{Symbol: "AAPL", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Close: f64(150)},
	}}
	history := &fakeHistoryRepo{}

	u := NewQuotesUsecase(provider, &fakeQuoteRepo{}, history, newFakeCache())

	bars, err := u.GetHistory(context.Background(), "aapl", "stock", "1mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if history.batches != 1 {
		t.Errorf("expected history persisted, got %d batches", history.batches)
	}
}

func TestGetHistory_PersistFailureStillServes(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{bars: []entity.PriceBar{
		{Symbol: "AAPL", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}}
	history := &fakeHistoryRepo{err: errors.New("db down")}

	u := NewQuotesUsecase(provider, &fakeQuoteRepo{}, history, newFakeCache())

	bars, err := u.GetHistory(context.Background(), "AAPL", "stock", "1mo")
	if err != nil {
		t.Fatalf("expected bars despite persist failure, got %v", err)
	}
	if len(bars) != 1 {
		t.Errorf("expected 1 bar, got %d", len(bars))
	}
}
