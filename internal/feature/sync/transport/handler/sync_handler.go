// Package handler exposes the admin sync endpoints over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"thaivest_backend/internal/api"
	"thaivest_backend/internal/feature/sync/domain"
	"thaivest_backend/internal/feature/sync/domain/entity"
)

// runTimeout bounds a detached sync run so an unresponsive provider cannot
// pin the lease goroutine forever.
const runTimeout = 30 * time.Minute

// SyncUsecase is what this handler needs from the sync feature.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type SyncUsecase interface {
	RunQuoteSync(ctx context.Context) (*entity.SyncLog, error)
	RunProfileSync(ctx context.Context) (*entity.SyncLog, error)
	RecentLogs(ctx context.Context, limit int) ([]entity.SyncLog, error)
}

// SyncHandler triggers background refresh runs and reports their history.
// Triggers return 202 immediately; the run itself continues detached from
// the request.
type SyncHandler struct {
	uc SyncUsecase
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(uc SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// TriggerQuotes handles POST /api/admin/sync/quotes.
func (h *SyncHandler) TriggerQuotes(c *gin.Context) {
	h.trigger(c, "quotes", h.uc.RunQuoteSync)
}

// TriggerProfiles handles POST /api/admin/sync/profiles.
func (h *SyncHandler) TriggerProfiles(c *gin.Context) {
	h.trigger(c, "profiles", h.uc.RunProfileSync)
}

// Logs handles GET /api/admin/sync/logs.
func (h *SyncHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.uc.RecentLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Err("internal_error", "failed to list sync runs"))
		return
	}
	c.JSON(http.StatusOK, api.OK(logs))
}

func (h *SyncHandler) trigger(c *gin.Context, job string, run func(context.Context) (*entity.SyncLog, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		log, err := run(ctx)
		switch {
		case errors.Is(err, domain.ErrSyncAlreadyRunning):
			slog.Warn("sync trigger ignored, run already in progress", "job", job)
		case err != nil:
			slog.Error("sync run failed", "job", job, "error", err)
		default:
			slog.Info("sync run accepted and finished", "job", job, "run_id", log.RunID)
		}
	}()

	c.JSON(http.StatusAccepted, api.OK(gin.H{"job": job, "status": "accepted"}))
}
