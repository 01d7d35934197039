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

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReactionService interface {
	ListReactions(ctx context.Context, targetID, targetType string, q *dto.ReactionListQuery) ([]*dto.ReactionDTO, *int64, pagination.Window, error)
	UpsertReaction(ctx context.Context, userID, targetID, targetType string, req *dto.UpsertReactionDTO) (*dto.UpsertReactionResultDTO, error)
	DeleteReaction(ctx context.Context, userID, targetID, targetType string) error
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
}

func NewReactionService(
	reactionRepo repository.ReactionRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
) ReactionService {
	return &reactionServiceImpl{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
	}
}

// resolveTarget 校验表态目标存在，目标缺失按各自实体的 not found 上报
func (s *reactionServiceImpl) resolveTarget(ctx context.Context, targetID, targetType string) (primitive.ObjectID, error) {
	id, err := parseID(targetID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	switch targetType {
	case model.TargetTypePost:
		exists, err := s.postRepo.Exists(ctx, id)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if !exists {
			return primitive.NilObjectID, ErrPostNotFound
		}
	case model.TargetTypeComment:
		exists, err := s.commentRepo.Exists(ctx, id)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if !exists {
			return primitive.NilObjectID, ErrCommentNotFound
		}
	default:
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

func (s *reactionServiceImpl) ListReactions(ctx context.Context, targetID, targetType string, q *dto.ReactionListQuery) ([]*dto.ReactionDTO, *int64, pagination.Window, error) {
	w, err := resolveWindow(q.Limit, q.Offset, q.Cursor)
	if err != nil {
		return nil, nil, w, err
	}

	id, err := s.resolveTarget(ctx, targetID, targetType)
	if err != nil {
		return nil, nil, w, err
	}

	filter := repository.ReactionFilter{
		TargetID:   id,
		TargetType: targetType,
		ReactType:  q.ReactType,
	}
	reactions, err := s.reactionRepo.List(ctx, filter, w)
	if err != nil {
		return nil, nil, w, err
	}

	var total *int64
	if !w.HasCursor() {
		count, err := s.reactionRepo.Count(ctx, filter)
		if err != nil {
			return nil, nil, w, err
		}
		total = &count
	}

	result := make([]*dto.ReactionDTO, len(reactions))
	for i, r := range reactions {
		result[i] = formatReaction(r)
	}
	return result, total, w, nil
}

// UpsertReaction 同一用户对同一目标最多一条表态：已有则原地改 react_type，
// 计数不动；仅首次插入时 likes_count +1
func (s *reactionServiceImpl) UpsertReaction(ctx context.Context, userID, targetID, targetType string, req *dto.UpsertReactionDTO) (*dto.UpsertReactionResultDTO, error) {
	id, err := s.resolveTarget(ctx, targetID, targetType)
	if err != nil {
		return nil, err
	}

	existing, err := s.reactionRepo.FindByUserTarget(ctx, userID, id, targetType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		updated, err := s.reactionRepo.UpdateReactType(ctx, userID, id, targetType, req.ReactType)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, ErrReactionNotFound
		}
		return &dto.UpsertReactionResultDTO{Reaction: formatReaction(updated), IsNew: false}, nil
	}

	reaction := &model.Reaction{
		UserID:     userID,
		TargetID:   id,
		TargetType: targetType,
		ReactType:  req.ReactType,
	}
	if err := s.reactionRepo.Insert(ctx, reaction); err != nil {
		// 并发撞上唯一索引时退化为原地更新
		if mongo.IsDuplicateKeyError(err) {
			updated, uerr := s.reactionRepo.UpdateReactType(ctx, userID, id, targetType, req.ReactType)
			if uerr != nil {
				return nil, uerr
			}
			if updated == nil {
				return nil, ErrReactionNotFound
			}
			return &dto.UpsertReactionResultDTO{Reaction: formatReaction(updated), IsNew: false}, nil
		}
		return nil, err
	}

	s.adjustLikes(ctx, id, targetType, 1)
	return &dto.UpsertReactionResultDTO{Reaction: formatReaction(reaction), IsNew: true}, nil
}

func (s *reactionServiceImpl) DeleteReaction(ctx context.Context, userID, targetID, targetType string) error {
	id, err := s.resolveTarget(ctx, targetID, targetType)
	if err != nil {
		return err
	}

	deleted, err := s.reactionRepo.DeleteByUserTarget(ctx, userID, id, targetType)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReactionNotFound
	}

	s.adjustLikes(ctx, id, targetType, -1)
	return nil
}

func (s *reactionServiceImpl) adjustLikes(ctx context.Context, targetID primitive.ObjectID, targetType string, delta int64) {
	var err error
	dirtyKey := consts.PostDirtyKey
	if targetType == model.TargetTypeComment {
		dirtyKey = consts.CommentDirtyKey
		err = s.commentRepo.IncField(ctx, targetID, "likes_count", delta)
	} else {
		err = s.postRepo.IncField(ctx, targetID, "likes_count", delta)
	}
	if err != nil {
		log.ErrorContext(ctx, "adjust likes count failed", "target_id", targetID.Hex(), "target_type", targetType, "err", err)
		if err := redis.SAdd(ctx, dirtyKey, targetID.Hex()); err != nil {
			log.ErrorContext(ctx, "mark target dirty failed", "target_id", targetID.Hex(), "err", err)
		}
	}
}

func formatReaction(r *model.Reaction) *dto.ReactionDTO {
	return &dto.ReactionDTO{
		ID:         r.ID.Hex(),
		UserID:     r.UserID,
		TargetID:   r.TargetID.Hex(),
		TargetType: r.TargetType,
		ReactType:  r.ReactType,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
