// Command sync runs one refresh job from the command line or a scheduler.
// Usage: sync [quotes|profiles]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"thaivest_backend/internal/app/di"
	etfsadapters "thaivest_backend/internal/feature/etfs/adapters"
	quotesadapters "thaivest_backend/internal/feature/quotes/adapters"
	stocksadapters "thaivest_backend/internal/feature/stocks/adapters"
	syncadapters "thaivest_backend/internal/feature/sync/adapters"
	syncusecase "thaivest_backend/internal/feature/sync/usecase"
	infradb "thaivest_backend/internal/platform/db"
	infraredis "thaivest_backend/internal/platform/redis"
)

func main() {
	job := "quotes"
	if len(os.Args) > 1 {
		job = os.Args[1]
	}

	db, err := infradb.OpenDB()
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := infraredis.NewRedisClient()
	if err != nil {
		log.Println("redis unavailable, sync will not invalidate shared cache:", err)
		rdb = nil
	}
	store := di.NewCacheStore(rdb)

	stockRepo := stocksadapters.NewStockGormRepository(db)
	etfRepo := etfsadapters.NewETFGormRepository(db)
	provider := di.NewQuoteProvider()

	uc := syncusecase.NewSyncUsecase(syncusecase.Config{
		Repo:     syncadapters.NewSyncGormRepository(db),
		Stocks:   stockRepo,
		ETFs:     etfRepo,
		Fetcher:  provider,
		Writer:   quotesadapters.NewLatestQuoteRepository(db),
		Profiles: stockRepo,
		Profiler: provider,
		Cache:    store,
		NewRunID: uuid.NewString,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	switch job {
	case "quotes":
		_, err = uc.RunQuoteSync(ctx)
	case "profiles":
		_, err = uc.RunProfileSync(ctx)
	default:
		log.Fatalf("unknown job %q, expected quotes or profiles", job)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Println(job, "sync ok")
}
