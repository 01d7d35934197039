package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionSvc service.ReactionService
}

func NewReactionHandler(reactionSvc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionSvc: reactionSvc,
	}
}

// target 从路由推导表态目标：挂在 posts 还是 comments 下
func reactionTarget(c *gin.Context) (targetID, targetType, collection string) {
	if commentID := c.Param("comment_id"); commentID != "" {
		return commentID, model.TargetTypeComment, "comments"
	}
	return c.Param("post_id"), model.TargetTypePost, "posts"
}

func (s *ReactionHandler) ListReactions(c *gin.Context) {
	var query dto.ReactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	targetID, targetType, collection := reactionTarget(c)
	reactions, total, w, err := s.reactionSvc.ListReactions(c.Request.Context(), targetID, targetType, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	base := response.APIBase(c)
	response.Success(c, http.StatusOK, reactions, "", response.ReactionsCollectionLinks(base, collection, targetID), paginationMeta(w, total))
}

// UpsertReaction 统一返回 200，新增还是覆盖由 is_new 区分
func (s *ReactionHandler) UpsertReaction(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpsertReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	targetID, targetType, collection := reactionTarget(c)
	result, err := s.reactionSvc.UpsertReaction(c.Request.Context(), userID, targetID, targetType, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Reaction updated"
	if result.IsNew {
		message = "Reaction created"
	}
	base := response.APIBase(c)
	response.Success(c, http.StatusOK, result, message, response.ReactionsCollectionLinks(base, collection, targetID), nil)
}

func (s *ReactionHandler) DeleteReaction(c *gin.Context) {
	userID := c.GetString("user_id")

	targetID, targetType, _ := reactionTarget(c)
	if err := s.reactionSvc.DeleteReaction(c.Request.Context(), userID, targetID, targetType); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
