// Package usecase implements the background refresh jobs for quotes and
// company profiles.
package usecase

import (
	"context"
	"time"

	quotesentity "thaivest_backend/internal/feature/quotes/domain/entity"
	stockentity "thaivest_backend/internal/feature/stocks/domain/entity"
	"thaivest_backend/internal/feature/sync/domain/entity"
)

const (
	// quoteBatchSize is how many symbols one provider batch carries.
	quoteBatchSize = 50
	// profileCheckpointEvery is how often the profile run persists progress.
	profileCheckpointEvery = 10
	// leaseTTL bounds how long a crashed run can block the next one.
	leaseTTL = 15 * time.Minute
)

// SyncRepository abstracts sync bookkeeping: run logs and the per-job lease.
// Interfaces are defined by the consumer (usecase), not the provider.
type SyncRepository interface {
	CreateLog(ctx context.Context, log *entity.SyncLog) error
	UpdateLog(ctx context.Context, log *entity.SyncLog) error
	RecentLogs(ctx context.Context, limit int) ([]entity.SyncLog, error)
	AcquireLease(ctx context.Context, jobName string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, jobName string) error
}

// SymbolSource lists the active symbols of one instrument table.
type SymbolSource interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// QuoteFetcher pulls quote snapshots from the provider in batches.
type QuoteFetcher interface {
	BatchGetQuotes(ctx context.Context, symbols []string) (map[string]*quotesentity.Quote, error)
}

// QuoteWriter persists refreshed quote rows.
type QuoteWriter interface {
	UpsertBatch(ctx context.Context, rows []quotesentity.LatestQuote) error
}

// ProfileStore lists and updates stocks whose profile is still missing.
type ProfileStore interface {
	ListMissingProfile(ctx context.Context) ([]stockentity.Stock, error)
	Update(ctx context.Context, stock *stockentity.Stock) error
}

// ProfileFetcher pulls company profiles from the provider.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, symbol string) (*stockentity.Profile, error)
}

// CacheInvalidator drops cache entries made stale by a sync run.
type CacheInvalidator interface {
	Delete(ctx context.Context, key string)
}

// SyncUsecase runs the refresh jobs. delay spaces out per-symbol profile
// fetches and is injectable for tests.
type SyncUsecase struct {
	repo     SyncRepository
	stocks   SymbolSource
	etfs     SymbolSource
	fetcher  QuoteFetcher
	writer   QuoteWriter
	profiles ProfileStore
	profiler ProfileFetcher
	cache    CacheInvalidator

	newRunID func() string
	delay    func()
}

// Config bundles the collaborators of the sync jobs.
type Config struct {
	Repo     SyncRepository
	Stocks   SymbolSource
	ETFs     SymbolSource
	Fetcher  QuoteFetcher
	Writer   QuoteWriter
	Profiles ProfileStore
	Profiler ProfileFetcher
	Cache    CacheInvalidator
	NewRunID func() string
	Delay    func()
}

// NewSyncUsecase wires the refresh jobs with their collaborators.
func NewSyncUsecase(cfg Config) *SyncUsecase {
	u := &SyncUsecase{
		repo:     cfg.Repo,
		stocks:   cfg.Stocks,
		etfs:     cfg.ETFs,
		fetcher:  cfg.Fetcher,
		writer:   cfg.Writer,
		profiles: cfg.Profiles,
		profiler: cfg.Profiler,
		cache:    cfg.Cache,
		newRunID: cfg.NewRunID,
		delay:    cfg.Delay,
	}
	if u.delay == nil {
		u.delay = func() { time.Sleep(200 * time.Millisecond) }
	}
	return u
}

// RecentLogs returns the latest run records, newest first.
func (u *SyncUsecase) RecentLogs(ctx context.Context, limit int) ([]entity.SyncLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return u.repo.RecentLogs(ctx, limit)
}
