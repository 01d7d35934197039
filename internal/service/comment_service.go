package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/pagination"
	"Keystone/internal/pkg/redis"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService interface {
	ListComments(ctx context.Context, postID string, q *dto.CommentListQuery) ([]*dto.CommentDTO, *int64, pagination.Window, error)
	GetComment(ctx context.Context, postID, commentID string) (*dto.CommentDTO, error)
	CreateComment(ctx context.Context, userID, postID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID, postID, commentID string, req *dto.UpdateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) error
}

type commentServiceImpl struct {
	commentRepo  repository.CommentRepo
	postRepo     repository.PostRepo
	reactionRepo repository.ReactionRepo
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	reactionRepo repository.ReactionRepo,
) CommentService {
	return &commentServiceImpl{
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *commentServiceImpl) ListComments(ctx context.Context, postID string, q *dto.CommentListQuery) ([]*dto.CommentDTO, *int64, pagination.Window, error) {
	w, err := resolveWindow(q.Limit, q.Offset, q.Cursor)
	if err != nil {
		return nil, nil, w, err
	}

	pid, err := parseID(postID)
	if err != nil {
		return nil, nil, w, err
	}
	exists, err := s.postRepo.Exists(ctx, pid)
	if err != nil {
		return nil, nil, w, err
	}
	if !exists {
		return nil, nil, w, ErrPostNotFound
	}

	filter := repository.CommentFilter{PostID: pid, UserID: q.UserID}
	comments, err := s.commentRepo.List(ctx, filter, w, pagination.ResolveSort(q.SortBy, q.Order))
	if err != nil {
		return nil, nil, w, err
	}

	var total *int64
	if !w.HasCursor() {
		count, err := s.commentRepo.Count(ctx, filter)
		if err != nil {
			return nil, nil, w, err
		}
		total = &count
	}

	result := make([]*dto.CommentDTO, len(comments))
	for i, c := range comments {
		result[i] = formatComment(c)
	}
	return result, total, w, nil
}

func (s *commentServiceImpl) GetComment(ctx context.Context, postID, commentID string) (*dto.CommentDTO, error) {
	pid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, pid, cid)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return formatComment(comment), nil
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	pid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	exists, err := s.postRepo.Exists(ctx, pid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		UserID:   userID,
		PostID:   pid,
		Content:  req.Content,
		MediaIDs: req.MediaIDs,
		Tags:     req.Tags,
	}
	if comment.MediaIDs == nil {
		comment.MediaIDs = []string{}
	}
	if comment.Tags == nil {
		comment.Tags = []string{}
	}

	// 回复必须挂在同一帖子下的已有评论上
	if req.ParentID != nil {
		parentID, err := parseID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		parent, err := s.commentRepo.GetByID(ctx, pid, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCommentNotFound
		}
		comment.ParentID = &parentID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.adjustPostCounter(ctx, pid, "comments_count", 1)
	if comment.ParentID != nil {
		s.adjustCommentCounter(ctx, *comment.ParentID, "replies_count", 1)
	}
	return formatComment(comment), nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, userID, postID, commentID string, req *dto.UpdateCommentDTO) (*dto.CommentDTO, error) {
	pid, err := parseID(postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.MediaIDs != nil {
		set["media_ids"] = *req.MediaIDs
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}

	comment, err := s.commentRepo.UpdateOwned(ctx, pid, cid, userID, set)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrAccessDenied
	}
	return formatComment(comment), nil
}

// DeleteComment 删除评论并回补父评论回复数、帖子评论数，同时清理评论上的表态
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	pid, err := parseID(postID)
	if err != nil {
		return err
	}
	cid, err := parseID(commentID)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, pid, cid)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrAccessDenied
	}

	deleted, err := s.commentRepo.DeleteOwned(ctx, cid, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAccessDenied
	}

	s.adjustPostCounter(ctx, pid, "comments_count", -1)
	if comment.ParentID != nil {
		s.adjustCommentCounter(ctx, *comment.ParentID, "replies_count", -1)
	}
	if _, err := s.reactionRepo.DeleteByTarget(ctx, cid, model.TargetTypeComment); err != nil {
		log.ErrorContext(ctx, "cascade delete reactions failed", "comment_id", commentID, "err", err)
	}
	return nil
}

// 计数调整失败不回滚不重试，记日志并打脏标记，留给对账任务修正
func (s *commentServiceImpl) adjustPostCounter(ctx context.Context, postID primitive.ObjectID, field string, delta int64) {
	if err := s.postRepo.IncField(ctx, postID, field, delta); err != nil {
		log.ErrorContext(ctx, "adjust post counter failed", "post_id", postID.Hex(), "field", field, "err", err)
		if err := redis.SAdd(ctx, consts.PostDirtyKey, postID.Hex()); err != nil {
			log.ErrorContext(ctx, "mark post dirty failed", "post_id", postID.Hex(), "err", err)
		}
	}
}

func (s *commentServiceImpl) adjustCommentCounter(ctx context.Context, commentID primitive.ObjectID, field string, delta int64) {
	if err := s.commentRepo.IncField(ctx, commentID, field, delta); err != nil {
		log.ErrorContext(ctx, "adjust comment counter failed", "comment_id", commentID.Hex(), "field", field, "err", err)
		if err := redis.SAdd(ctx, consts.CommentDirtyKey, commentID.Hex()); err != nil {
			log.ErrorContext(ctx, "mark comment dirty failed", "comment_id", commentID.Hex(), "err", err)
		}
	}
}

func formatComment(c *model.Comment) *dto.CommentDTO {
	d := &dto.CommentDTO{
		ID:           c.ID.Hex(),
		UserID:       c.UserID,
		PostID:       c.PostID.Hex(),
		Content:      c.Content,
		MediaIDs:     c.MediaIDs,
		Tags:         c.Tags,
		LikesCount:   c.LikesCount,
		RepliesCount: c.RepliesCount,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if c.ParentID != nil {
		parent := c.ParentID.Hex()
		d.ParentID = &parent
	}
	return d
}
