package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	postID := c.Param("post_id")
	comments, total, w, err := s.commentSvc.ListComments(c.Request.Context(), postID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, comments, "", response.CommentsCollectionLinks(base, postID), paginationMeta(w, total))
}

func (s *CommentHandler) GetComment(c *gin.Context) {
	postID := c.Param("post_id")
	comment, err := s.commentSvc.GetComment(c.Request.Context(), postID, c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, comment, "", response.CommentLinks(base, postID, comment.ID), nil)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusCreated, comment, "Comment created", response.CommentLinks(base, postID, comment.ID), nil)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), userID, postID, c.Param("comment_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, comment, "Comment updated", response.CommentLinks(base, postID, comment.ID), nil)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")

	err := s.commentSvc.DeleteComment(c.Request.Context(), userID, c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
