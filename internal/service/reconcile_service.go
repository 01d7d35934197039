package service

import (
	"Keystone/internal/model"
	"Keystone/internal/repository"
	"context"
)

// ReconcileService 以源数据重算冗余计数，供校准任务调用
type ReconcileService interface {
	ReconcilePost(ctx context.Context, postID string) error
	ReconcileComment(ctx context.Context, commentID string) error
}

type reconcileServiceImpl struct {
	postRepo     repository.PostRepo
	commentRepo  repository.CommentRepo
	reactionRepo repository.ReactionRepo
}

func NewReconcileService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	reactionRepo repository.ReactionRepo,
) ReconcileService {
	return &reconcileServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *reconcileServiceImpl) ReconcilePost(ctx context.Context, postID string) error {
	id, err := parseID(postID)
	if err != nil {
		return err
	}

	exists, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		// 帖子已删，无计数可校
		return nil
	}

	likes, err := s.reactionRepo.Count(ctx, repository.ReactionFilter{
		TargetID:   id,
		TargetType: model.TargetTypePost,
	})
	if err != nil {
		return err
	}
	comments, err := s.commentRepo.Count(ctx, repository.CommentFilter{PostID: id})
	if err != nil {
		return err
	}
	return s.postRepo.SetCounters(ctx, id, likes, comments)
}

func (s *reconcileServiceImpl) ReconcileComment(ctx context.Context, commentID string) error {
	id, err := parseID(commentID)
	if err != nil {
		return err
	}

	exists, err := s.commentRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	likes, err := s.reactionRepo.Count(ctx, repository.ReactionFilter{
		TargetID:   id,
		TargetType: model.TargetTypeComment,
	})
	if err != nil {
		return err
	}
	replies, err := s.commentRepo.CountReplies(ctx, id)
	if err != nil {
		return err
	}
	return s.commentRepo.SetCounters(ctx, id, likes, replies)
}
