package middleware

import (
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/pkg/response"
	"Keystone/internal/pkg/security"
	"Keystone/internal/service"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, service.CodeAuthRequired, "Authentication required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, service.CodeInvalidToken, "Invalid token", nil)
			c.Abort()
			return
		}

		// 已登出的令牌在黑名单里挂着签名
		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, service.CodeInternalError, "An unexpected error occurred", nil)
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, http.StatusUnauthorized, service.CodeInvalidToken, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, err := security.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				response.Fail(c, http.StatusUnauthorized, service.CodeTokenExpired, "Token has expired", nil)
			} else {
				response.Fail(c, http.StatusUnauthorized, service.CodeInvalidToken, "Invalid token", nil)
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		newCtx := context.WithValue(c.Request.Context(), consts.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
