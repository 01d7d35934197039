package api

import (
	"Keystone/internal/api/config"
	"Keystone/internal/api/middleware"
	"Keystone/internal/pkg/logger"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.CommonMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	logger.SetupGin(r)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, service.CodeRouteNotFound, "Route not found", nil)
	})

	version := "v1"
	if config.Cfg != nil && config.Cfg.Server.APIVersion != "" {
		version = config.Cfg.Server.APIVersion
	}
	apiGroup := r.Group("/" + version)
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/refresh", group.AuthHandler.Refresh)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			// 读接口匿名可访问
			readGroup := postGroup.Group("")
			readGroup.Use(middleware.AuthOptionalMiddleware())
			{
				readGroup.GET("", group.PostHandler.ListPosts)
				readGroup.GET("/:post_id", group.PostHandler.GetPost)
				readGroup.GET("/:post_id/comments", group.CommentHandler.ListComments)
				readGroup.GET("/:post_id/comments/:comment_id", group.CommentHandler.GetComment)
				readGroup.GET("/:post_id/reactions", group.ReactionHandler.ListReactions)
			}

			writeGroup := postGroup.Group("")
			writeGroup.Use(middleware.AuthMiddleware())
			{
				writeGroup.POST("", group.PostHandler.CreatePost)
				writeGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
				writeGroup.DELETE("/:post_id", group.PostHandler.DeletePost)

				writeGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
				writeGroup.PATCH("/:post_id/comments/:comment_id", group.CommentHandler.UpdateComment)
				writeGroup.DELETE("/:post_id/comments/:comment_id", group.CommentHandler.DeleteComment)

				writeGroup.POST("/:post_id/reactions", group.ReactionHandler.UpsertReaction)
				writeGroup.DELETE("/:post_id/reactions", group.ReactionHandler.DeleteReaction)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			readGroup := commentGroup.Group("")
			readGroup.Use(middleware.AuthOptionalMiddleware())
			{
				readGroup.GET("/:comment_id/reactions", group.ReactionHandler.ListReactions)
			}

			writeGroup := commentGroup.Group("")
			writeGroup.Use(middleware.AuthMiddleware())
			{
				writeGroup.POST("/:comment_id/reactions", group.ReactionHandler.UpsertReaction)
				writeGroup.DELETE("/:comment_id/reactions", group.ReactionHandler.DeleteReaction)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			{
				mediaGroup.POST("/upload", group.MediaHandler.Upload)
			}
		}
	}

	return r
}
