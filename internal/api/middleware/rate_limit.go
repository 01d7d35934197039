package middleware

import (
	"Keystone/internal/api/config"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 按客户端 IP 做固定窗口限流，Redis 故障时放行
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Cfg.RateLimit
		if !cfg.Enable {
			c.Next()
			return
		}

		key := consts.RateLimitKey + c.ClientIP()
		window := time.Duration(cfg.WindowSec) * time.Second
		count, err := redis.IncrWithWindow(c.Request.Context(), key, window)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "rate limit check failed", "err", err)
			c.Next()
			return
		}

		if count > int64(cfg.MaxRequests) {
			response.Fail(c, http.StatusTooManyRequests, service.CodeRateLimited, "Too many requests, please try again later", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
