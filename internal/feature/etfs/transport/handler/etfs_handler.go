// Package handler exposes the ETFs feature over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/etfs/domain"
	"thaivest_backend/internal/feature/etfs/domain/entity"
	"thaivest_backend/internal/feature/etfs/usecase"
	quotesdomain "thaivest_backend/internal/feature/quotes/domain"
)

// ETFsUsecase is what this handler needs from the ETFs feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type ETFsUsecase interface {
	List(ctx context.Context, page, perPage int, category string) (*usecase.ListResult, error)
	Top50(ctx context.Context) ([]entity.ETF, error)
	Get(ctx context.Context, symbol string) (*entity.ETF, error)
	Holdings(ctx context.Context, symbol string) ([]entity.ETFHolding, error)
}

// ETFsHandler serves the ETF listing, detail and holdings endpoints.
type ETFsHandler struct {
	uc ETFsUsecase
}

// NewETFsHandler creates an ETFsHandler.
func NewETFsHandler(uc ETFsUsecase) *ETFsHandler {
	return &ETFsHandler{uc: uc}
}

// List handles GET /api/etfs.
func (h *ETFsHandler) List(c *gin.Context) {
	page, perPage := api.ParsePagination(c, 20, 100)
	category := c.Query("category")

	res, err := h.uc.List(c.Request.Context(), page, perPage, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to list etfs"))
		return
	}
	c.JSON(http.StatusOK, api.Paginated(res.ETFs, res.Total, page, perPage))
}

// Top50 handles GET /api/etfs/top50.
func (h *ETFsHandler) Top50(c *gin.Context) {
	etfs, err := h.uc.Top50(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to load top etfs"))
		return
	}
	c.JSON(http.StatusOK, api.OK(etfs))
}

// Get handles GET /api/etfs/:symbol.
func (h *ETFsHandler) Get(c *gin.Context) {
	etf, err := h.uc.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeETFError(c, err, "failed to load etf")
		return
	}
	c.JSON(http.StatusOK, api.OK(etf))
}

// Holdings handles GET /api/etfs/:symbol/holdings.
func (h *ETFsHandler) Holdings(c *gin.Context) {
	holdings, err := h.uc.Holdings(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeETFError(c, err, "failed to load etf holdings")
		return
	}
	c.JSON(http.StatusOK, api.OK(holdings))
}

func writeETFError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrETFNotFound), errors.Is(err, quotesdomain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.Err("not_found", "unknown etf symbol"))
	case errors.Is(err, quotesdomain.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, api.Err("provider_unavailable", "market data provider is unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", fallback))
	}
}
