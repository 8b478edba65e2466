package main

import (
	"context"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"thaivest_backend/internal/app/di"
	"thaivest_backend/internal/app/router"
	analysisadapters "thaivest_backend/internal/feature/analysis/adapters"
	"thaivest_backend/internal/feature/analysis/adapters/gemini"
	analysishandler "thaivest_backend/internal/feature/analysis/transport/handler"
	analysisusecase "thaivest_backend/internal/feature/analysis/usecase"
	etfsadapters "thaivest_backend/internal/feature/etfs/adapters"
	etfshandler "thaivest_backend/internal/feature/etfs/transport/handler"
	etfsusecase "thaivest_backend/internal/feature/etfs/usecase"
	indicesadapters "thaivest_backend/internal/feature/indices/adapters"
	indiceshandler "thaivest_backend/internal/feature/indices/transport/handler"
	indicesusecase "thaivest_backend/internal/feature/indices/usecase"
	quotesadapters "thaivest_backend/internal/feature/quotes/adapters"
	quoteshandler "thaivest_backend/internal/feature/quotes/transport/handler"
	quotesusecase "thaivest_backend/internal/feature/quotes/usecase"
	searchadapters "thaivest_backend/internal/feature/search/adapters"
	searchhandler "thaivest_backend/internal/feature/search/transport/handler"
	searchusecase "thaivest_backend/internal/feature/search/usecase"
	stocksadapters "thaivest_backend/internal/feature/stocks/adapters"
	stockshandler "thaivest_backend/internal/feature/stocks/transport/handler"
	stocksusecase "thaivest_backend/internal/feature/stocks/usecase"
	syncadapters "thaivest_backend/internal/feature/sync/adapters"
	synchandler "thaivest_backend/internal/feature/sync/transport/handler"
	syncusecase "thaivest_backend/internal/feature/sync/usecase"
	"thaivest_backend/internal/platform/config"
	infradb "thaivest_backend/internal/platform/db"
	infraredis "thaivest_backend/internal/platform/redis"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	db, err := infradb.OpenDB()
	if err != nil {
		log.Fatal(err)
	}

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("redis unavailable, using in-process cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}
	store := di.NewCacheStore(rdb)

	provider := di.NewQuoteProvider()

	// Repository
	stockRepo := stocksadapters.NewStockGormRepository(db)
	etfRepo := etfsadapters.NewETFGormRepository(db)
	indexRepo := indicesadapters.NewIndexGormRepository(db)
	quoteRepo := quotesadapters.NewLatestQuoteRepository(db)
	historyRepo := quotesadapters.NewPriceHistoryRepository(db)
	searchRepo := searchadapters.NewSearchGormRepository(db)
	analysisRepo := analysisadapters.NewAnalysisGormRepository(db)
	syncRepo := syncadapters.NewSyncGormRepository(db)

	// Usecase
	quotesUC := quotesusecase.NewQuotesUsecase(provider, quoteRepo, historyRepo, store)
	stocksUC := stocksusecase.NewStocksUsecase(stockRepo, provider, store)
	etfsUC := etfsusecase.NewETFsUsecase(etfRepo, provider, store)
	indicesUC := indicesusecase.NewIndicesUsecase(indexRepo, store)
	searchUC := searchusecase.NewSearchUsecase(searchRepo, store)

	var analyzer analysisusecase.Analyzer
	if g, err := gemini.NewGeminiAnalyzer(context.Background()); err != nil {
		slog.Warn("analysis generation disabled", "error", err)
	} else {
		analyzer = g
	}
	analysisUC := analysisusecase.NewAnalysisUsecase(analysisRepo, analyzer, quotesUC)

	syncUC := syncusecase.NewSyncUsecase(syncusecase.Config{
		Repo:     syncRepo,
		Stocks:   stockRepo,
		ETFs:     etfRepo,
		Fetcher:  provider,
		Writer:   quoteRepo,
		Profiles: stockRepo,
		Profiler: provider,
		Cache:    store,
		NewRunID: uuid.NewString,
	})

	// Handler
	h := router.Handlers{
		Stocks:   stockshandler.NewStocksHandler(stocksUC),
		ETFs:     etfshandler.NewETFsHandler(etfsUC),
		Indices:  indiceshandler.NewIndicesHandler(indicesUC),
		Quotes:   quoteshandler.NewQuotesHandler(quotesUC),
		Search:   searchhandler.NewSearchHandler(searchUC),
		Analysis: analysishandler.NewAnalysisHandler(analysisUC),
		Sync:     synchandler.NewSyncHandler(syncUC),
	}

	r := router.NewRouter(cfg, h)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
