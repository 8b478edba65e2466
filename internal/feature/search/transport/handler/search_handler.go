// Package handler exposes search over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/search/usecase"
)

// SearchUsecase is what this handler needs from the search feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type SearchUsecase interface {
	Search(ctx context.Context, query string) ([]usecase.Result, error)
}

// SearchHandler serves the search endpoint.
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search handles GET /api/search?q=...
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, api.Err("missing_query", "query parameter q is required"))
		return
	}

	results, err := h.uc.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "search failed"))
		return
	}
	c.JSON(http.StatusOK, api.OK(results))
}
