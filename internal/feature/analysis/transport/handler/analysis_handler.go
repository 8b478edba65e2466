// Package handler exposes analysis articles over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/analysis/domain"
	"thaivest_backend/internal/feature/analysis/domain/entity"
	quotesdomain "thaivest_backend/internal/feature/quotes/domain"
)

// AnalysisUsecase is what this handler needs from the analysis feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AnalysisUsecase interface {
	LatestPublished(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error)
	ListBySymbol(ctx context.Context, symbol, symbolType string, limit int) ([]entity.Analysis, error)
	Generate(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error)
}

// AnalysisHandler serves published articles and the admin-only generator.
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Latest handles GET /api/analysis/:symbol.
func (h *AnalysisHandler) Latest(c *gin.Context) {
	symbolType := c.DefaultQuery("type", "stock")

	article, err := h.uc.LatestPublished(c.Request.Context(), c.Param("symbol"), symbolType)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.OK(article))
	case errors.Is(err, domain.ErrAnalysisNotFound):
		c.JSON(http.StatusNotFound, api.Err("not_found", "no published analysis for symbol"))
	default:
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to load analysis"))
	}
}

// List handles GET /api/analysis/:symbol/history.
func (h *AnalysisHandler) List(c *gin.Context) {
	symbolType := c.DefaultQuery("type", "stock")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	articles, err := h.uc.ListBySymbol(c.Request.Context(), c.Param("symbol"), symbolType, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to list analysis"))
		return
	}
	c.JSON(http.StatusOK, api.OK(articles))
}

// Generate handles POST /api/admin/analysis/:symbol/generate. The admin key
// middleware guards the route.
func (h *AnalysisHandler) Generate(c *gin.Context) {
	symbolType := c.DefaultQuery("type", "stock")

	article, err := h.uc.Generate(c.Request.Context(), c.Param("symbol"), symbolType)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, api.OK(article))
	case errors.Is(err, quotesdomain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, api.Err("not_found", "unknown symbol"))
	case errors.Is(err, quotesdomain.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, api.Err("provider_unavailable", "market data provider is unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to generate analysis"))
	}
}
