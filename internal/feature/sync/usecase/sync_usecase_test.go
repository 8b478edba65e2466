package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	quotesdomain "thaivest_backend/internal/feature/quotes/domain"
	quotesentity "thaivest_backend/internal/feature/quotes/domain/entity"
	stockentity "thaivest_backend/internal/feature/stocks/domain/entity"
	"thaivest_backend/internal/feature/sync/domain"
	"thaivest_backend/internal/feature/sync/domain/entity"
)

func f64(v float64) *float64 { return &v }
func strp(s string) *string  { return &s }

type fakeSyncRepo struct {
	leaseHeld   bool
	acquires    int
	releases    int
	logs        []*entity.SyncLog
	updateCalls int
}

func (r *fakeSyncRepo) CreateLog(_ context.Context, log *entity.SyncLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeSyncRepo) UpdateLog(_ context.Context, _ *entity.SyncLog) error {
	r.updateCalls++
	return nil
}

func (r *fakeSyncRepo) RecentLogs(_ context.Context, _ int) ([]entity.SyncLog, error) {
	return nil, nil
}

func (r *fakeSyncRepo) AcquireLease(_ context.Context, _ string, _ time.Duration) (bool, error) {
	r.acquires++
	if r.leaseHeld {
		return false, nil
	}
	r.leaseHeld = true
	return true, nil
}

func (r *fakeSyncRepo) ReleaseLease(_ context.Context, _ string) error {
	r.leaseHeld = false
	r.releases++
	return nil
}

type fakeSymbols struct {
	symbols []string
	err     error
}

func (s *fakeSymbols) ListSymbols(_ context.Context) ([]string, error) {
	return s.symbols, s.err
}

type fakeFetcher struct {
	batches    [][]string
	failBatch  int // 1-based index of the batch to fail, 0 disables
	dropSymbol string
}

func (f *fakeFetcher) BatchGetQuotes(_ context.Context, symbols []string) (map[string]*quotesentity.Quote, error) {
	f.batches = append(f.batches, symbols)
	if f.failBatch == len(f.batches) {
		return nil, quotesdomain.ErrProviderUnavailable
	}
	out := make(map[string]*quotesentity.Quote, len(symbols))
	for _, s := range symbols {
		if s == f.dropSymbol {
			continue
		}
		out[s] = &quotesentity.Quote{Symbol: s, Price: f64(100)}
	}
	return out, nil
}

type fakeWriter struct {
	rows []quotesentity.LatestQuote
	err  error
}

func (w *fakeWriter) UpsertBatch(_ context.Context, rows []quotesentity.LatestQuote) error {
	if w.err != nil {
		return w.err
	}
	w.rows = append(w.rows, rows...)
	return nil
}

type fakeProfileStore struct {
	stocks  []stockentity.Stock
	updates []string
}

func (s *fakeProfileStore) ListMissingProfile(_ context.Context) ([]stockentity.Stock, error) {
	return s.stocks, nil
}

func (s *fakeProfileStore) Update(_ context.Context, stock *stockentity.Stock) error {
	s.updates = append(s.updates, stock.Symbol)
	return nil
}

type fakeProfiler struct {
	profiles map[string]*stockentity.Profile
	failOn   map[string]error
}

func (p *fakeProfiler) GetProfile(_ context.Context, symbol string) (*stockentity.Profile, error) {
	if err, ok := p.failOn[symbol]; ok {
		return nil, err
	}
	profile, ok := p.profiles[symbol]
	if !ok {
		return nil, quotesdomain.ErrSymbolNotFound
	}
	return profile, nil
}

type fakeInvalidator struct {
	deleted []string
}

func (c *fakeInvalidator) Delete(_ context.Context, key string) {
	c.deleted = append(c.deleted, key)
}

func newTestSync(repo *fakeSyncRepo, stocks, etfs *fakeSymbols, fetcher *fakeFetcher,
	writer *fakeWriter, store *fakeProfileStore, profiler *fakeProfiler, inv *fakeInvalidator) *SyncUsecase {
	return NewSyncUsecase(Config{
		Repo:     repo,
		Stocks:   stocks,
		ETFs:     etfs,
		Fetcher:  fetcher,
		Writer:   writer,
		Profiles: store,
		Profiler: profiler,
		Cache:    inv,
		NewRunID: func() string { return "test-run" },
		Delay:    func() {},
	})
}

func manySymbols(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return out
}

func TestRunQuoteSync_BatchesAndCounts(t *testing.T) {
	t.Parallel()

	repo := &fakeSyncRepo{}
	fetcher := &fakeFetcher{}
	writer := &fakeWriter{}
	inv := &fakeInvalidator{}
	u := newTestSync(repo,
		&fakeSymbols{symbols: manySymbols("S", 80)},
		&fakeSymbols{symbols: manySymbols("E", 40)},
		fetcher, writer, &fakeProfileStore{}, &fakeProfiler{}, inv)

	log, err := u.RunQuoteSync(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fetcher.batches) != 3 {
		t.Fatalf("expected 120 symbols in 3 batches, got %d", len(fetcher.batches))
	}
	if len(fetcher.batches[0]) != 50 || len(fetcher.batches[2]) != 20 {
		t.Errorf("unexpected batch sizes %d/%d/%d",
			len(fetcher.batches[0]), len(fetcher.batches[1]), len(fetcher.batches[2]))
	}
	if log.RecordsProcessed != 120 {
		t.Errorf("expected 120 processed, got %d", log.RecordsProcessed)
	}
	if log.RecordsUpdated != 120 {
		t.Errorf("expected 120 updated, got %d", log.RecordsUpdated)
	}
	if log.Status != entity.StatusCompleted {
		t.Errorf("expected completed, got %s", log.Status)
	}
	if log.CompletedAt == nil {
		t.Error("expected completion timestamp")
	}
	if len(inv.deleted) != 120 {
		t.Errorf("expected every refreshed quote invalidated, got %d", len(inv.deleted))
	}
	if repo.releases != 1 {
		t.Errorf("expected lease released once, got %d", repo.releases)
	}

	// ETF rows carry their type through to the persisted rows.
	types := map[string]int{}
	for _, row := range writer.rows {
		types[row.SymbolType]++
	}
	if types["stock"] != 80 || types["etf"] != 40 {
		t.Errorf("unexpected type split %v", types)
	}
}

func TestRunQuoteSync_LeaseHeld(t *testing.T) {
	t.Parallel()

	repo := &fakeSyncRepo{leaseHeld: true}
	u := newTestSync(repo, &fakeSymbols{}, &fakeSymbols{}, &fakeFetcher{}, &fakeWriter{},
		&fakeProfileStore{}, &fakeProfiler{}, &fakeInvalidator{})

	_, err := u.RunQuoteSync(context.Background())
	if !errors.Is(err, domain.ErrSyncAlreadyRunning) {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}
	if len(repo.logs) != 0 {
		t.Error("no run record must be created while the lease is held")
	}
}

func TestRunQuoteSync_FailedBatchSkipped(t *testing.T) {
	t.Parallel()

	repo := &fakeSyncRepo{}
	fetcher := &fakeFetcher{failBatch: 2}
	writer := &fakeWriter{}
	u := newTestSync(repo,
		&fakeSymbols{symbols: manySymbols("S", 120)}, &fakeSymbols{},
		fetcher, writer, &fakeProfileStore{}, &fakeProfiler{}, &fakeInvalidator{})

	log, err := u.RunQuoteSync(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if log.RecordsProcessed != 120 {
		t.Errorf("failed batches still count as processed, got %d", log.RecordsProcessed)
	}
	if log.RecordsUpdated != 70 {
		t.Errorf("expected 70 updated (batches 1 and 3), got %d", log.RecordsUpdated)
	}
	if log.Status != entity.StatusCompleted {
		t.Errorf("a partially failed run still completes, got %s", log.Status)
	}
	if log.ErrorMessage == nil {
		t.Error("expected the batch error recorded")
	}
}

func TestRunQuoteSync_SymbolsMissingFromResponse(t *testing.T) {
	t.Parallel()

	repo := &fakeSyncRepo{}
	fetcher := &fakeFetcher{dropSymbol: "S001"}
	writer := &fakeWriter{}
	u := newTestSync(repo,
		&fakeSymbols{symbols: manySymbols("S", 10)}, &fakeSymbols{},
		fetcher, writer, &fakeProfileStore{}, &fakeProfiler{}, &fakeInvalidator{})

	log, err := u.RunQuoteSync(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.RecordsProcessed != 10 || log.RecordsUpdated != 9 {
		t.Errorf("expected 10 processed and 9 updated, got %d/%d",
			log.RecordsProcessed, log.RecordsUpdated)
	}
}

func TestRunProfileSync_SkipsAndCheckpoints(t *testing.T) {
	t.Parallel()

	var stocks []stockentity.Stock
	for _, s := range manySymbols("P", 25) {
		stocks = append(stocks, stockentity.Stock{Symbol: s, Name: s})
	}
	profiles := map[string]*stockentity.Profile{}
	for _, s := range manySymbols("P", 25) {
		profiles[s] = &stockentity.Profile{Symbol: s, Name: s, CEO: strp("CEO"), Employees: intp(10)}
	}
	delete(profiles, "P003") // unknown to the provider

	repo := &fakeSyncRepo{}
	store := &fakeProfileStore{stocks: stocks}
	profiler := &fakeProfiler{
		profiles: profiles,
		failOn:   map[string]error{"P007": quotesdomain.ErrProviderUnavailable},
	}
	u := newTestSync(repo, &fakeSymbols{}, &fakeSymbols{}, &fakeFetcher{}, &fakeWriter{},
		store, profiler, &fakeInvalidator{})

	log, err := u.RunProfileSync(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if log.RecordsProcessed != 25 {
		t.Errorf("expected 25 processed, got %d", log.RecordsProcessed)
	}
	if log.RecordsUpdated != 23 {
		t.Errorf("expected 23 updated (one unknown, one transient), got %d", log.RecordsUpdated)
	}
	if len(store.updates) != 23 {
		t.Errorf("expected 23 persisted updates, got %d", len(store.updates))
	}
	if log.Status != entity.StatusCompleted {
		t.Errorf("expected completed, got %s", log.Status)
	}
	// 25 symbols checkpoint twice (at 10 and 20) plus the final update.
	if repo.updateCalls != 3 {
		t.Errorf("expected 3 log updates, got %d", repo.updateCalls)
	}
	if repo.releases != 1 {
		t.Errorf("expected lease released once, got %d", repo.releases)
	}
}

func TestRunProfileSync_LeaseHeld(t *testing.T) {
	t.Parallel()

	repo := &fakeSyncRepo{leaseHeld: true}
	u := newTestSync(repo, &fakeSymbols{}, &fakeSymbols{}, &fakeFetcher{}, &fakeWriter{},
		&fakeProfileStore{}, &fakeProfiler{}, &fakeInvalidator{})

	_, err := u.RunProfileSync(context.Background())
	if !errors.Is(err, domain.ErrSyncAlreadyRunning) {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}
}

func intp(n int) *int { return &n }
