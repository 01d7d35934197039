package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePost_RecomputesFromSource(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	reactionRepo := newFakeReactionRepo()
	ctx := context.Background()

	postSvc := NewPostService(postRepo, commentRepo, reactionRepo)
	commentSvc := NewCommentService(commentRepo, postRepo, reactionRepo)
	reactionSvc := NewReactionService(reactionRepo, postRepo, commentRepo)
	svc := NewReconcileService(postRepo, commentRepo, reactionRepo)

	post, err := postSvc.CreatePost(ctx, "owner", &dto.CreatePostDTO{Content: "root"})
	require.NoError(t, err)
	_, err = commentSvc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "a"})
	require.NoError(t, err)
	_, err = reactionSvc.UpsertReaction(ctx, "fan", post.ID, model.TargetTypePost, &dto.UpsertReactionDTO{ReactType: "like"})
	require.NoError(t, err)

	// 人为把冗余计数写歪
	for _, p := range postRepo.posts {
		p.LikesCount = 42
		p.CommentsCount = 42
	}

	require.NoError(t, svc.ReconcilePost(ctx, post.ID))

	for _, p := range postRepo.posts {
		assert.Equal(t, int64(1), p.LikesCount)
		assert.Equal(t, int64(1), p.CommentsCount)
	}
}

func TestReconcile_MissingEntityIsNoop(t *testing.T) {
	svc := NewReconcileService(newFakePostRepo(), newFakeCommentRepo(), newFakeReactionRepo())

	assert.NoError(t, svc.ReconcilePost(context.Background(), "64f000000000000000000099"))
	assert.NoError(t, svc.ReconcileComment(context.Background(), "64f000000000000000000099"))
	assert.ErrorIs(t, svc.ReconcilePost(context.Background(), "bad-id"), ErrInvalidID)
}

func TestReconcileComment_Replies(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	reactionRepo := newFakeReactionRepo()
	ctx := context.Background()

	postSvc := NewPostService(postRepo, commentRepo, reactionRepo)
	commentSvc := NewCommentService(commentRepo, postRepo, reactionRepo)
	svc := NewReconcileService(postRepo, commentRepo, reactionRepo)

	post, err := postSvc.CreatePost(ctx, "owner", &dto.CreatePostDTO{Content: "root"})
	require.NoError(t, err)
	parent, err := commentSvc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "parent"})
	require.NoError(t, err)
	_, err = commentSvc.CreateComment(ctx, "u-3", post.ID, &dto.CreateCommentDTO{Content: "reply", ParentID: &parent.ID})
	require.NoError(t, err)

	for _, c := range commentRepo.comments {
		c.RepliesCount = 99
	}

	require.NoError(t, svc.ReconcileComment(ctx, parent.ID))

	stored, err := commentSvc.GetComment(ctx, post.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.RepliesCount)
}
