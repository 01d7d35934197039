package response

import (
	"Keystone/internal/api/config"
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/consts"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIBase 取请求推导的基础地址并拼接版本前缀
func APIBase(c *gin.Context) string {
	base := "http://localhost:8080"
	if v, ok := c.Request.Context().Value(consts.BaseURL).(string); ok && v != "" {
		base = v
	}
	version := "v1"
	if config.Cfg != nil && config.Cfg.Server.APIVersion != "" {
		version = config.Cfg.Server.APIVersion
	}
	return fmt.Sprintf("%s/%s", base, version)
}

// PostLinks 单个帖子的超媒体链接
func PostLinks(base, postID string) dto.Links {
	self := fmt.Sprintf("%s/posts/%s", base, postID)
	return dto.Links{
		"self":         {Href: self, Method: http.MethodGet},
		"update":       {Href: self, Method: http.MethodPatch},
		"delete":       {Href: self, Method: http.MethodDelete},
		"comments":     {Href: self + "/comments", Method: http.MethodGet},
		"add_comment":  {Href: self + "/comments", Method: http.MethodPost},
		"reactions":    {Href: self + "/reactions", Method: http.MethodGet},
		"add_reaction": {Href: self + "/reactions", Method: http.MethodPost},
	}
}

// PostsCollectionLinks 帖子集合链接
func PostsCollectionLinks(base string) dto.Links {
	href := base + "/posts"
	return dto.Links{
		"self":   {Href: href, Method: http.MethodGet},
		"create": {Href: href, Method: http.MethodPost},
	}
}

// CommentLinks 单条评论的超媒体链接
func CommentLinks(base, postID, commentID string) dto.Links {
	self := fmt.Sprintf("%s/posts/%s/comments/%s", base, postID, commentID)
	return dto.Links{
		"self":         {Href: self, Method: http.MethodGet},
		"update":       {Href: self, Method: http.MethodPatch},
		"delete":       {Href: self, Method: http.MethodDelete},
		"reactions":    {Href: fmt.Sprintf("%s/comments/%s/reactions", base, commentID), Method: http.MethodGet},
		"add_reaction": {Href: fmt.Sprintf("%s/comments/%s/reactions", base, commentID), Method: http.MethodPost},
		"post":         {Href: fmt.Sprintf("%s/posts/%s", base, postID), Method: http.MethodGet},
	}
}

// CommentsCollectionLinks 评论集合链接
func CommentsCollectionLinks(base, postID string) dto.Links {
	href := fmt.Sprintf("%s/posts/%s/comments", base, postID)
	return dto.Links{
		"self":   {Href: href, Method: http.MethodGet},
		"create": {Href: href, Method: http.MethodPost},
		"post":   {Href: fmt.Sprintf("%s/posts/%s", base, postID), Method: http.MethodGet},
	}
}

// ReactionsCollectionLinks 表态集合链接，collection 为 posts 或 comments
func ReactionsCollectionLinks(base, collection, targetID string) dto.Links {
	href := fmt.Sprintf("%s/%s/%s/reactions", base, collection, targetID)
	return dto.Links{
		"self":   {Href: href, Method: http.MethodGet},
		"upsert": {Href: href, Method: http.MethodPost},
		"delete": {Href: href, Method: http.MethodDelete},
	}
}
