package middleware

import (
	"Keystone/internal/pkg/consts"
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
)

// CommonMiddleware 推导请求的对外基础地址，供链接生成使用
func CommonMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		baseURL := fmt.Sprintf("%s://%s", scheme, c.Request.Host)

		newCtx := context.WithValue(c.Request.Context(), consts.BaseURL, baseURL)
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}
