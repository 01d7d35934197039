package api

import "Keystone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	ReactionHandler *handler.ReactionHandler
	AuthHandler     *handler.AuthHandler
	MediaHandler    *handler.MediaHandler
}
