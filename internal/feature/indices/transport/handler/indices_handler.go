// Package handler exposes the indices feature over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/indices/domain"
	"thaivest_backend/internal/feature/indices/domain/entity"
	"thaivest_backend/internal/feature/indices/usecase"
)

// IndicesUsecase is what this handler needs from the indices feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type IndicesUsecase interface {
	List(ctx context.Context) ([]entity.Index, error)
	Get(ctx context.Context, symbol string) (*entity.Index, error)
	Components(ctx context.Context, symbol string, page, perPage int, q usecase.ComponentQuery) (*usecase.ComponentsResult, error)
}

// IndicesHandler serves the index listing and components endpoints.
type IndicesHandler struct {
	uc IndicesUsecase
}

// NewIndicesHandler creates an IndicesHandler.
func NewIndicesHandler(uc IndicesUsecase) *IndicesHandler {
	return &IndicesHandler{uc: uc}
}

// List handles GET /api/indices.
func (h *IndicesHandler) List(c *gin.Context) {
	indices, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to list indices"))
		return
	}
	c.JSON(http.StatusOK, api.OK(indices))
}

// Get handles GET /api/indices/:symbol.
func (h *IndicesHandler) Get(c *gin.Context) {
	index, err := h.uc.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeIndexError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK(index))
}

// Components handles GET /api/indices/:symbol/components.
func (h *IndicesHandler) Components(c *gin.Context) {
	page, perPage := api.ParsePagination(c, 50, 100)
	q := usecase.ComponentQuery{
		Sector: c.Query("sector"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Search: c.Query("search"),
	}

	res, err := h.uc.Components(c.Request.Context(), c.Param("symbol"), page, perPage, q)
	if err != nil {
		writeIndexError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginated(res.Components, res.Total, page, perPage))
}

func writeIndexError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrIndexNotFound) {
		c.JSON(http.StatusNotFound, api.Err("not_found", "unknown index symbol"))
		return
	}
	c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to load index"))
}
