package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*fakePostRepo, *fakeCommentRepo, *fakeReactionRepo, CommentService, *dto.PostDTO) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	reactionRepo := newFakeReactionRepo()

	postSvc := NewPostService(postRepo, commentRepo, reactionRepo)
	post, err := postSvc.CreatePost(context.Background(), "owner", &dto.CreatePostDTO{Content: "root"})
	require.NoError(t, err)

	svc := NewCommentService(commentRepo, postRepo, reactionRepo)
	return postRepo, commentRepo, reactionRepo, svc, post
}

func TestCreateComment_IncrementsPostCounter(t *testing.T) {
	postRepo, _, _, svc, post := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Nil(t, comment.ParentID)

	stored, err := svc.GetComment(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", stored.Content)

	for _, p := range postRepo.posts {
		assert.Equal(t, int64(1), p.CommentsCount)
	}
}

func TestCreateComment_ReplyIncrementsParent(t *testing.T) {
	_, commentRepo, _, svc, post := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "parent"})
	require.NoError(t, err)

	reply, err := svc.CreateComment(ctx, "u-3", post.ID, &dto.CreateCommentDTO{Content: "reply", ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	stored, err := svc.GetComment(ctx, post.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.RepliesCount)
	assert.Len(t, commentRepo.comments, 2)
}

func TestCreateComment_MissingParentOrPost(t *testing.T) {
	_, _, _, svc, post := newCommentFixture(t)
	ctx := context.Background()

	ghost := "64f000000000000000000099"
	_, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "x", ParentID: &ghost})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.CreateComment(ctx, "u-2", ghost, &dto.CreateCommentDTO{Content: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteComment_DecrementsAndCleansReactions(t *testing.T) {
	postRepo, commentRepo, reactionRepo, svc, post := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "parent"})
	require.NoError(t, err)
	reply, err := svc.CreateComment(ctx, "u-3", post.ID, &dto.CreateCommentDTO{Content: "reply", ParentID: &parent.ID})
	require.NoError(t, err)

	reactionSvc := NewReactionService(reactionRepo, postRepo, commentRepo)
	_, err = reactionSvc.UpsertReaction(ctx, "fan", reply.ID, model.TargetTypeComment, &dto.UpsertReactionDTO{ReactType: "like"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, "u-3", post.ID, reply.ID))

	stored, err := svc.GetComment(ctx, post.ID, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.RepliesCount)

	for _, p := range postRepo.posts {
		assert.Equal(t, int64(1), p.CommentsCount)
	}
	assert.Empty(t, reactionRepo.reactions)
}

func TestDeleteComment_OwnershipConflated(t *testing.T) {
	_, _, _, svc, post := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "mine"})
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, "intruder", post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteComment(ctx, "u-2", post.ID, "64f000000000000000000099")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListComments_ScopedToPost(t *testing.T) {
	_, _, _, svc, post := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, "u-2", post.ID, &dto.CreateCommentDTO{Content: "a"})
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, "u-3", post.ID, &dto.CreateCommentDTO{Content: "b"})
	require.NoError(t, err)

	comments, total, _, err := svc.ListComments(ctx, post.ID, &dto.CommentListQuery{})
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	require.NotNil(t, total)
	assert.Equal(t, int64(2), *total)

	filtered, _, _, err := svc.ListComments(ctx, post.ID, &dto.CommentListQuery{UserID: "u-2"})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, _, _, err = svc.ListComments(ctx, "64f000000000000000000099", &dto.CommentListQuery{})
	assert.ErrorIs(t, err, ErrPostNotFound)
}
