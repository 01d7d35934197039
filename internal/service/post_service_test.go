package service

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture() (*fakePostRepo, *fakeCommentRepo, *fakeReactionRepo, PostService) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	reactionRepo := newFakeReactionRepo()
	svc := NewPostService(postRepo, commentRepo, reactionRepo)
	return postRepo, commentRepo, reactionRepo, svc
}

func TestCreatePost_Defaults(t *testing.T) {
	_, _, _, svc := newPostFixture()

	post, err := svc.CreatePost(context.Background(), "u-1", &dto.CreatePostDTO{Content: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "u-1", post.UserID)
	assert.Equal(t, model.VisibilityPublic, post.Visibility)
	assert.Equal(t, int64(0), post.LikesCount)
	assert.Equal(t, int64(0), post.CommentsCount)
	assert.NotEmpty(t, post.ID)
	assert.NotEmpty(t, post.CreatedAt)
	assert.NotNil(t, post.MediaIDs)
	assert.NotNil(t, post.Tags)
}

func TestGetPost_NotFoundAndBadID(t *testing.T) {
	_, _, _, svc := newPostFixture()

	_, err := svc.GetPost(context.Background(), "64f000000000000000000099")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPost(context.Background(), "nonsense")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUpdatePost_OwnershipConflated(t *testing.T) {
	_, _, _, svc := newPostFixture()

	post, err := svc.CreatePost(context.Background(), "owner", &dto.CreatePostDTO{Content: "mine"})
	require.NoError(t, err)

	newContent := "hijacked"
	// 别人的帖子与不存在的帖子给同一个错误
	_, err = svc.UpdatePost(context.Background(), "intruder", post.ID, &dto.UpdatePostDTO{Content: &newContent})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdatePost(context.Background(), "owner", "64f000000000000000000099", &dto.UpdatePostDTO{Content: &newContent})
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := svc.UpdatePost(context.Background(), "owner", post.ID, &dto.UpdatePostDTO{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "hijacked", updated.Content)
}

func TestDeletePost_Cascades(t *testing.T) {
	postRepo, commentRepo, reactionRepo, svc := newPostFixture()
	commentSvc := NewCommentService(commentRepo, postRepo, reactionRepo)
	reactionSvc := NewReactionService(reactionRepo, postRepo, commentRepo)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "owner", &dto.CreatePostDTO{Content: "root"})
	require.NoError(t, err)

	comment, err := commentSvc.CreateComment(ctx, "other", post.ID, &dto.CreateCommentDTO{Content: "nice"})
	require.NoError(t, err)

	_, err = reactionSvc.UpsertReaction(ctx, "fan", post.ID, model.TargetTypePost, &dto.UpsertReactionDTO{ReactType: "like"})
	require.NoError(t, err)
	_, err = reactionSvc.UpsertReaction(ctx, "fan", comment.ID, model.TargetTypeComment, &dto.UpsertReactionDTO{ReactType: "love"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, "owner", post.ID))

	assert.Empty(t, commentRepo.comments)
	// 帖子上的和评论上的表态都要清掉
	assert.Empty(t, reactionRepo.reactions)
}

func TestListPosts_OffsetHasTotal(t *testing.T) {
	_, _, _, svc := newPostFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, "u-1", &dto.CreatePostDTO{Content: "post"})
		require.NoError(t, err)
	}

	posts, total, w, err := svc.ListPosts(ctx, &dto.PostListQuery{Limit: "2"})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	require.NotNil(t, total)
	assert.Equal(t, int64(3), *total)
	assert.Equal(t, int64(2), w.Limit)
}

func TestListPosts_CursorOmitsTotal(t *testing.T) {
	_, _, _, svc := newPostFixture()
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, "u-1", &dto.CreatePostDTO{Content: "post"})
	require.NoError(t, err)

	_, total, _, err := svc.ListPosts(ctx, &dto.PostListQuery{Cursor: first.ID})
	require.NoError(t, err)
	assert.Nil(t, total)
}

func TestListPosts_GarbledPagingFallsBack(t *testing.T) {
	_, _, _, svc := newPostFixture()

	_, _, w, err := svc.ListPosts(context.Background(), &dto.PostListQuery{Limit: "banana", Offset: "-9"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), w.Limit)
	assert.Equal(t, int64(0), w.Offset)
}

func TestListPosts_InvalidCursor(t *testing.T) {
	_, _, _, svc := newPostFixture()

	_, _, _, err := svc.ListPosts(context.Background(), &dto.PostListQuery{Cursor: "zzz"})
	assert.ErrorIs(t, err, ErrInvalidID)
}
