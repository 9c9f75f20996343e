package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"farewatch/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// TriggerAuthMiddleware gates the batch endpoints behind the shared secret
// presented by the external scheduler. An empty configured secret disables
// the check entirely; that trade-off is intended for local development only.
type TriggerAuthMiddleware struct {
	secret string
	logger *slog.Logger
}

func NewTriggerAuthMiddleware(cfg config.BatchConfig, logger *slog.Logger) *TriggerAuthMiddleware {
	if cfg.CronSecret == "" {
		logger.Warn("CRON_SECRET is empty; batch trigger authorization is disabled")
	}
	return &TriggerAuthMiddleware{
		secret: cfg.CronSecret,
		logger: logger,
	}
}

func (m *TriggerAuthMiddleware) RequireCronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.secret == "" {
			c.Next()
			return
		}

		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Trigger credential required",
			})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) != 1 {
			m.logger.Warn("batch trigger rejected: bad credential", "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid trigger credential",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
