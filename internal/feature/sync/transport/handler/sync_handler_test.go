package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"thaivest_backend/internal/feature/sync/domain/entity"
)

// mockSyncUsecase is a mock implementation of the SyncUsecase interface.
type mockSyncUsecase struct {
	mu          sync.Mutex
	quoteRuns   int
	profileRuns int
	logs        []entity.SyncLog
	logsErr     error
	done        chan struct{}
}

func (m *mockSyncUsecase) RunQuoteSync(_ context.Context) (*entity.SyncLog, error) {
	m.mu.Lock()
	m.quoteRuns++
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return &entity.SyncLog{RunID: "run-1", Status: entity.StatusCompleted}, nil
}

func (m *mockSyncUsecase) RunProfileSync(_ context.Context) (*entity.SyncLog, error) {
	m.mu.Lock()
	m.profileRuns++
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return &entity.SyncLog{RunID: "run-2", Status: entity.StatusCompleted}, nil
}

func (m *mockSyncUsecase) RecentLogs(_ context.Context, _ int) ([]entity.SyncLog, error) {
	return m.logs, m.logsErr
}

func newSyncRouter(mock *mockSyncUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSyncHandler(mock)
	r := gin.New()
	r.POST("/api/admin/sync/quotes", h.TriggerQuotes)
	r.POST("/api/admin/sync/profiles", h.TriggerProfiles)
	r.GET("/api/admin/sync/logs", h.Logs)
	return r
}

func TestSyncHandler_TriggerQuotes_AcceptsAndRuns(t *testing.T) {
	mock := &mockSyncUsecase{done: make(chan struct{})}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/quotes", nil)
	newSyncRouter(mock).ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"accepted"`)

	select {
	case <-mock.done:
	case <-time.After(time.Second):
		t.Fatal("expected the run to start in the background")
	}
	mock.mu.Lock()
	defer mock.mu.Unlock()
	assert.Equal(t, 1, mock.quoteRuns)
}

func TestSyncHandler_TriggerProfiles_Accepts(t *testing.T) {
	mock := &mockSyncUsecase{done: make(chan struct{})}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/profiles", nil)
	newSyncRouter(mock).ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	select {
	case <-mock.done:
	case <-time.After(time.Second):
		t.Fatal("expected the run to start in the background")
	}
}

func TestSyncHandler_Logs(t *testing.T) {
	started := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mock := &mockSyncUsecase{logs: []entity.SyncLog{
		{RunID: "run-1", SyncType: entity.SyncTypeQuotes, Status: entity.StatusCompleted, RecordsProcessed: 120, StartedAt: started},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/sync/logs", nil)
	newSyncRouter(mock).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"run_id":"run-1"`)
	assert.Contains(t, w.Body.String(), `"records_processed":120`)
}
