// Package handler exposes the quote read path over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/feature/quotes/usecase"
)

// QuotesUsecase is what this handler needs from the quotes feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol, symbolType string) (*usecase.QuoteResult, error)
	GetHistory(ctx context.Context, symbol, symbolType, period string) ([]entity.PriceBar, error)
}

// QuotesHandler serves quote and history endpoints. The same handler backs
// both the stock and ETF routes; symbolType tags rows created lazily.
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler creates a QuotesHandler.
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// Quote returns a handler for GET .../:symbol/quote.
func (h *QuotesHandler) Quote(symbolType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"), symbolType)
		if err != nil {
			writeQuoteError(c, err)
			return
		}
		c.JSON(http.StatusOK, api.OK(res))
	}
}

// History returns a handler for GET .../:symbol/history.
func (h *QuotesHandler) History(symbolType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.DefaultQuery("period", "1y")
		bars, err := h.uc.GetHistory(c.Request.Context(), c.Param("symbol"), symbolType, period)
		if err != nil {
			writeQuoteError(c, err)
			return
		}
		c.JSON(http.StatusOK, api.OK(bars))
	}
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.Err("not_found", "unknown symbol"))
	case errors.Is(err, domain.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, api.Err("provider_unavailable", "market data provider is unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to load quote"))
	}
}
