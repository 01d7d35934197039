package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/pagination"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService interface {
	ListPosts(ctx context.Context, q *dto.PostListQuery) ([]*dto.PostDTO, *int64, pagination.Window, error)
	GetPost(ctx context.Context, postID string) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID, postID string, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
	reactionRepo repository.ReactionRepo
}

func NewPostService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	reactionRepo repository.ReactionRepo,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
	}
}

// parseID 路径参数转 ObjectID，格式错误统一映射 ErrInvalidID
func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// resolveWindow 解析分页参数并预校验游标格式
func resolveWindow(limit, offset, cursor string) (pagination.Window, error) {
	w := pagination.Resolve(limit, offset, cursor)
	if w.HasCursor() {
		if _, err := w.CursorID(); err != nil {
			return w, ErrInvalidID
		}
	}
	return w, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, q *dto.PostListQuery) ([]*dto.PostDTO, *int64, pagination.Window, error) {
	w, err := resolveWindow(q.Limit, q.Offset, q.Cursor)
	if err != nil {
		return nil, nil, w, err
	}

	filter := repository.PostFilter{
		UserID: q.UserID,
		Tags:   q.Tags,
		Q:      q.Q,
	}
	if q.Status != "" {
		status := q.Status == "true"
		filter.Status = &status
	}

	posts, err := s.postRepo.List(ctx, filter, w, pagination.ResolveSort(q.SortBy, q.Order))
	if err != nil {
		return nil, nil, w, err
	}

	// 游标分页不统计总数：游标翻的不是一个固定快照
	var total *int64
	if !w.HasCursor() {
		count, err := s.postRepo.Count(ctx, filter)
		if err != nil {
			return nil, nil, w, err
		}
		total = &count
	}

	result := make([]*dto.PostDTO, len(posts))
	for i, p := range posts {
		result[i] = formatPost(p)
	}
	return result, total, w, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	id, err := parseID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return formatPost(post), nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	post := &model.Post{}
	if err := copier.Copy(post, req); err != nil {
		return nil, err
	}
	post.UserID = userID
	if post.Visibility == "" {
		post.Visibility = model.VisibilityPublic
	}
	if post.MediaIDs == nil {
		post.MediaIDs = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.IsModerated = true

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return formatPost(post), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID string, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	id, err := parseID(postID)
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
	if req.Visibility != nil {
		set["visibility"] = *req.Visibility
	}

	post, err := s.postRepo.UpdateOwned(ctx, id, userID, set)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrAccessDenied
	}
	return formatPost(post), nil
}

// DeletePost 级联删除帖子下的评论、帖子上的表态以及评论上的表态
// 计数无需调整：父文档本身已经不在了
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID string) error {
	id, err := parseID(postID)
	if err != nil {
		return err
	}

	deleted, err := s.postRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAccessDenied
	}

	commentIDs, err := s.commentRepo.ListIDsByPost(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "list comment ids for cascade failed", "post_id", postID, "err", err)
	}

	if _, err := s.reactionRepo.DeleteByTarget(ctx, id, model.TargetTypePost); err != nil {
		log.ErrorContext(ctx, "cascade delete post reactions failed", "post_id", postID, "err", err)
	}
	if _, err := s.reactionRepo.DeleteByTargets(ctx, commentIDs, model.TargetTypeComment); err != nil {
		log.ErrorContext(ctx, "cascade delete comment reactions failed", "post_id", postID, "err", err)
	}
	if _, err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		log.ErrorContext(ctx, "cascade delete comments failed", "post_id", postID, "err", err)
	}
	return nil
}

func formatPost(p *model.Post) *dto.PostDTO {
	return &dto.PostDTO{
		ID:            p.ID.Hex(),
		UserID:        p.UserID,
		Content:       p.Content,
		MediaIDs:      p.MediaIDs,
		Tags:          p.Tags,
		PostShareID:   p.PostShareID,
		GroupID:       p.GroupID,
		Visibility:    p.Visibility,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		SharesCount:   p.SharesCount,
		IsModerated:   p.IsModerated,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
