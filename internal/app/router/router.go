// Package router wires the HTTP routes and cross-cutting middleware.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	analysishandler "thaivest_backend/internal/feature/analysis/transport/handler"
	etfshandler "thaivest_backend/internal/feature/etfs/transport/handler"
	indiceshandler "thaivest_backend/internal/feature/indices/transport/handler"
	quoteshandler "thaivest_backend/internal/feature/quotes/transport/handler"
	searchhandler "thaivest_backend/internal/feature/search/transport/handler"
	stockshandler "thaivest_backend/internal/feature/stocks/transport/handler"
	synchandler "thaivest_backend/internal/feature/sync/transport/handler"
	"thaivest_backend/internal/platform/config"
	platformhandler "thaivest_backend/internal/platform/http/handler"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Stocks   *stockshandler.StocksHandler
	ETFs     *etfshandler.ETFsHandler
	Indices  *indiceshandler.IndicesHandler
	Quotes   *quoteshandler.QuotesHandler
	Search   *searchhandler.SearchHandler
	Analysis *analysishandler.AnalysisHandler
	Sync     *synchandler.SyncHandler
}

// NewRouter builds the gin engine with CORS, the public API surface and the
// admin-key protected sync routes.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Key"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", platformhandler.Health)
	r.HEAD("/health", platformhandler.Health)

	apiGroup := r.Group("/api")
	{
		stocks := apiGroup.Group("/stocks")
		stocks.GET("", h.Stocks.List)
		stocks.GET("/:symbol", h.Stocks.Get)
		stocks.GET("/:symbol/quote", h.Quotes.Quote("stock"))
		stocks.GET("/:symbol/history", h.Quotes.History("stock"))

		etfs := apiGroup.Group("/etfs")
		etfs.GET("", h.ETFs.List)
		etfs.GET("/top50", h.ETFs.Top50)
		etfs.GET("/:symbol", h.ETFs.Get)
		etfs.GET("/:symbol/quote", h.Quotes.Quote("etf"))
		etfs.GET("/:symbol/history", h.Quotes.History("etf"))
		etfs.GET("/:symbol/holdings", h.ETFs.Holdings)

		indices := apiGroup.Group("/indices")
		indices.GET("", h.Indices.List)
		indices.GET("/:symbol", h.Indices.Get)
		indices.GET("/:symbol/components", h.Indices.Components)

		apiGroup.GET("/search", h.Search.Search)

		analysis := apiGroup.Group("/analysis")
		analysis.GET("/:symbol", h.Analysis.Latest)
		analysis.GET("/:symbol/history", h.Analysis.List)

		admin := apiGroup.Group("/admin")
		admin.Use(AdminKeyRequired(cfg.AdminAPIKey))
		{
			admin.POST("/sync/quotes", h.Sync.TriggerQuotes)
			admin.POST("/sync/profiles", h.Sync.TriggerProfiles)
			admin.GET("/sync/logs", h.Sync.Logs)
			admin.POST("/analysis/:symbol/generate", h.Analysis.Generate)
		}
	}

	return r
}

// AdminKeyRequired rejects requests whose X-Admin-Key header does not match
// the configured key. The check runs before any work is scheduled.
func AdminKeyRequired(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Err("unauthorized", "invalid admin key"))
			return
		}
		c.Next()
	}
}
