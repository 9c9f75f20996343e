//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"farewatch/internal/handler/middleware"
	"farewatch/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func triggerRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := middleware.NewTriggerAuthMiddleware(config.BatchConfig{CronSecret: secret}, logger)

	router := gin.New()
	router.POST("/batch/price-check", auth.RequireCronSecret(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func performTrigger(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/batch/price-check", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireCronSecret(t *testing.T) {
	const secret = "scheduler-secret"

	cases := []struct {
		name       string
		authHeader string
		expectCode int
	}{
		{name: "valid secret", authHeader: "Bearer " + secret, expectCode: http.StatusOK},
		{name: "missing header", authHeader: "", expectCode: http.StatusUnauthorized},
		{name: "wrong secret", authHeader: "Bearer nope", expectCode: http.StatusUnauthorized},
		{name: "bearer with empty token", authHeader: "Bearer ", expectCode: http.StatusUnauthorized},
		{name: "non-bearer scheme", authHeader: "Basic " + secret, expectCode: http.StatusUnauthorized},
		{name: "secret without scheme", authHeader: secret, expectCode: http.StatusUnauthorized},
	}

	router := triggerRouter(secret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performTrigger(router, tc.authHeader)
			assert.Equal(t, tc.expectCode, w.Code)
		})
	}

	t.Run("empty configured secret disables the check", func(t *testing.T) {
		open := triggerRouter("")
		w := performTrigger(open, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
