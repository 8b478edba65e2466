package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAdminKeyRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/admin/action", AdminKeyRequired("secret"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "valid key passes", key: "secret", wantStatus: http.StatusOK},
		{name: "wrong key rejected", key: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "missing key rejected", key: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/action", nil)
			if tt.key != "" {
				req.Header.Set("X-Admin-Key", tt.key)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
