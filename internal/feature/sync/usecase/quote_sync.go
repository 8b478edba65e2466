package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	quotesentity "thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/feature/sync/domain"
	"thaivest_backend/internal/feature/sync/domain/entity"
	"thaivest_backend/internal/platform/cache"
)

type taggedSymbol struct {
	symbol     string
	symbolType string
}

// RunQuoteSync refreshes the latest quote of every active stock and ETF in
// provider batches. One failing batch is recorded and skipped; the remaining
// batches still run. Returns ErrSyncAlreadyRunning when another run holds
// the lease.
func (u *SyncUsecase) RunQuoteSync(ctx context.Context) (*entity.SyncLog, error) {
	ok, err := u.repo.AcquireLease(ctx, entity.SyncTypeQuotes, leaseTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrSyncAlreadyRunning
	}
	defer func() {
		if err := u.repo.ReleaseLease(ctx, entity.SyncTypeQuotes); err != nil {
			slog.Error("failed to release quote sync lease", "error", err)
		}
	}()

	log := &entity.SyncLog{
		RunID:     u.newRunID(),
		SyncType:  entity.SyncTypeQuotes,
		Status:    entity.StatusStarted,
		StartedAt: time.Now(),
	}
	if err := u.repo.CreateLog(ctx, log); err != nil {
		return nil, err
	}

	symbols, err := u.collectSymbols(ctx)
	if err != nil {
		return u.finalize(ctx, log, err)
	}
	slog.Info("quote sync started", "run_id", log.RunID, "symbols", len(symbols))

	var lastErr error
	for start := 0; start < len(symbols); start += quoteBatchSize {
		end := min(start+quoteBatchSize, len(symbols))
		batch := symbols[start:end]

		updated, err := u.syncBatch(ctx, batch)
		log.RecordsProcessed += len(batch)
		log.RecordsUpdated += updated
		if err != nil {
			slog.Error("quote sync batch failed", "run_id", log.RunID, "batch_start", start, "error", err)
			lastErr = err
		}
	}

	return u.finalize(ctx, log, lastErr)
}

// syncBatch fetches one batch, persists the rows it got back and drops the
// stale cache entries. Symbols the provider omitted simply stay unchanged.
func (u *SyncUsecase) syncBatch(ctx context.Context, batch []taggedSymbol) (int, error) {
	names := make([]string, len(batch))
	types := make(map[string]string, len(batch))
	for i, s := range batch {
		names[i] = s.symbol
		types[s.symbol] = s.symbolType
	}

	quotes, err := u.fetcher.BatchGetQuotes(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("fetch batch: %w", err)
	}
	if len(quotes) == 0 {
		return 0, nil
	}

	rows := make([]quotesentity.LatestQuote, 0, len(quotes))
	for symbol, q := range quotes {
		rows = append(rows, quotesentity.FromQuote(q, types[symbol]))
	}
	if err := u.writer.UpsertBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("persist batch: %w", err)
	}

	for symbol := range quotes {
		u.cache.Delete(ctx, cache.QuoteKey(symbol))
	}
	return len(rows), nil
}

func (u *SyncUsecase) collectSymbols(ctx context.Context) ([]taggedSymbol, error) {
	stockSymbols, err := u.stocks.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock symbols: %w", err)
	}
	etfSymbols, err := u.etfs.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("list etf symbols: %w", err)
	}

	symbols := make([]taggedSymbol, 0, len(stockSymbols)+len(etfSymbols))
	for _, s := range stockSymbols {
		symbols = append(symbols, taggedSymbol{symbol: s, symbolType: "stock"})
	}
	for _, s := range etfSymbols {
		symbols = append(symbols, taggedSymbol{symbol: s, symbolType: "etf"})
	}
	return symbols, nil
}

// finalize stamps the run record exactly once. A run that processed some
// batches but hit errors still completes; only a run that could not start
// its work is marked failed.
func (u *SyncUsecase) finalize(ctx context.Context, log *entity.SyncLog, runErr error) (*entity.SyncLog, error) {
	now := time.Now()
	log.CompletedAt = &now
	log.Status = entity.StatusCompleted
	if runErr != nil {
		msg := runErr.Error()
		log.ErrorMessage = &msg
		if log.RecordsProcessed == 0 {
			log.Status = entity.StatusFailed
		}
	}

	if err := u.repo.UpdateLog(ctx, log); err != nil {
		slog.Error("failed to finalize sync log", "run_id", log.RunID, "error", err)
		return log, err
	}
	slog.Info("sync finished", "run_id", log.RunID, "status", log.Status,
		"processed", log.RecordsProcessed, "updated", log.RecordsUpdated)
	return log, nil
}
