package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/pagination"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// paginationMeta 列表响应的分页元数据，游标翻页时不带总数
func paginationMeta(w pagination.Window, total *int64) *dto.Metadata {
	return &dto.Metadata{
		Pagination: &dto.Pagination{
			Limit:      w.Limit,
			Offset:     w.Offset,
			TotalItems: total,
		},
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, total, w, err := s.postSvc.ListPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, posts, "", response.PostsCollectionLinks(base), paginationMeta(w, total))
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, post, "", response.PostLinks(base, post.ID), nil)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusCreated, post, "Post created", response.PostLinks(base, post.ID), nil)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, c.Param("post_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, post, "Post updated", response.PostLinks(base, post.ID), nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, c.Param("post_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
