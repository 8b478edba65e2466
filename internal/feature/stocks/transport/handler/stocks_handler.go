// Package handler exposes the stocks feature over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	quotesdomain "thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/stocks/domain"
	"thaivest_backend/internal/feature/stocks/domain/entity"
	"thaivest_backend/internal/feature/stocks/usecase"
)

// StocksUsecase is what this handler needs from the stocks feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type StocksUsecase interface {
	List(ctx context.Context, page, perPage int, sector, search string) (*usecase.ListResult, error)
	Get(ctx context.Context, symbol string) (*entity.Stock, error)
}

// StocksHandler serves the stock listing and detail endpoints.
type StocksHandler struct {
	uc StocksUsecase
}

// NewStocksHandler creates a StocksHandler.
func NewStocksHandler(uc StocksUsecase) *StocksHandler {
	return &StocksHandler{uc: uc}
}

// List handles GET /api/stocks.
func (h *StocksHandler) List(c *gin.Context) {
	page, perPage := api.ParsePagination(c, 20, 100)
	sector := c.Query("sector")
	search := c.Query("search")

	res, err := h.uc.List(c.Request.Context(), page, perPage, sector, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to list stocks"))
		return
	}
	c.JSON(http.StatusOK, api.Paginated(res.Stocks, res.Total, page, perPage))
}

// Get handles GET /api/stocks/:symbol.
func (h *StocksHandler) Get(c *gin.Context) {
	symbol := c.Param("symbol")

	stock, err := h.uc.Get(c.Request.Context(), symbol)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.OK(stock))
	case errors.Is(err, domain.ErrStockNotFound), errors.Is(err, quotesdomain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.Err("not_found", "unknown stock symbol"))
	case errors.Is(err, quotesdomain.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, api.Err("provider_unavailable", "market data provider is unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to load stock"))
	}
}
