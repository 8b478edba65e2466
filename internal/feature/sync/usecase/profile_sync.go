package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	quotesdomain "thaivest_backend/internal/feature/quotes/domain"
	stocksusecase "thaivest_backend/internal/feature/stocks/usecase"
	"thaivest_backend/internal/feature/sync/domain"
	"thaivest_backend/internal/feature/sync/domain/entity"
	"thaivest_backend/internal/platform/cache"
)

// RunProfileSync backfills profile fields for stocks that never had them
// fetched. Symbols are fetched one at a time with a delay in between, and
// progress is checkpointed to the run record every few symbols so a long
// run stays observable. A symbol the provider does not know is skipped for
// good; transient provider errors skip the symbol for this run only.
func (u *SyncUsecase) RunProfileSync(ctx context.Context) (*entity.SyncLog, error) {
	ok, err := u.repo.AcquireLease(ctx, entity.SyncTypeProfiles, leaseTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrSyncAlreadyRunning
	}
	defer func() {
		if err := u.repo.ReleaseLease(ctx, entity.SyncTypeProfiles); err != nil {
			slog.Error("failed to release profile sync lease", "error", err)
		}
	}()

	log := &entity.SyncLog{
		RunID:     u.newRunID(),
		SyncType:  entity.SyncTypeProfiles,
		Status:    entity.StatusStarted,
		StartedAt: time.Now(),
	}
	if err := u.repo.CreateLog(ctx, log); err != nil {
		return nil, err
	}

	stocks, err := u.profiles.ListMissingProfile(ctx)
	if err != nil {
		return u.finalize(ctx, log, err)
	}
	slog.Info("profile sync started", "run_id", log.RunID, "pending", len(stocks))

	var lastErr error
	for i := range stocks {
		stock := &stocks[i]
		log.RecordsProcessed++

		profile, err := u.profiler.GetProfile(ctx, stock.Symbol)
		switch {
		case errors.Is(err, quotesdomain.ErrSymbolNotFound):
			slog.Warn("profile sync: symbol unknown to provider", "symbol", stock.Symbol)
		case err != nil:
			slog.Error("profile sync: fetch failed", "symbol", stock.Symbol, "error", err)
			lastErr = err
		default:
			stocksusecase.ApplyProfile(stock, profile)
			if err := u.profiles.Update(ctx, stock); err != nil {
				slog.Error("profile sync: persist failed", "symbol", stock.Symbol, "error", err)
				lastErr = err
			} else {
				log.RecordsUpdated++
				u.cache.Delete(ctx, cache.StockKey(stock.Symbol))
			}
		}

		if log.RecordsProcessed%profileCheckpointEvery == 0 {
			if err := u.repo.UpdateLog(ctx, log); err != nil {
				slog.Error("profile sync: checkpoint failed", "run_id", log.RunID, "error", err)
			}
		}
		if i < len(stocks)-1 {
			u.delay()
		}
	}

	return u.finalize(ctx, log, lastErr)
}
