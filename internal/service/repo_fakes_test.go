package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/pagination"
	"Keystone/internal/repository"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 内存版仓储，行为对齐 Mongo 实现：未命中返回 (nil, nil)，owner 条件并入查询

type fakePostRepo struct {
	posts      map[primitive.ObjectID]*model.Post
	incErr     error
	incCalls   []string
	setCounter map[primitive.ObjectID][2]int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:      make(map[primitive.ObjectID]*model.Post),
		setCounter: make(map[primitive.ObjectID][2]int64),
	}
}

func (s *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *fakePostRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := s.posts[id]
	return ok, nil
}

func (s *fakePostRepo) List(ctx context.Context, f repository.PostFilter, w pagination.Window, _ bson.D) ([]*model.Post, error) {
	var matched []*model.Post
	for _, p := range s.posts {
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	if w.HasCursor() {
		cursorID, err := w.CursorID()
		if err != nil {
			return nil, err
		}
		var after []*model.Post
		for _, p := range matched {
			if p.ID.Hex() > cursorID.Hex() {
				after = append(after, p)
			}
		}
		matched = after
	} else if w.Offset < int64(len(matched)) {
		matched = matched[w.Offset:]
	} else {
		matched = nil
	}

	if int64(len(matched)) > w.Limit {
		matched = matched[:w.Limit]
	}
	return matched, nil
}

func (s *fakePostRepo) Count(ctx context.Context, f repository.PostFilter) (int64, error) {
	count := int64(0)
	for _, p := range s.posts {
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		count++
	}
	return count, nil
}

func (s *fakePostRepo) UpdateOwned(ctx context.Context, id primitive.ObjectID, userID string, set bson.M) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	if v, ok := set["content"]; ok {
		p.Content = v.(string)
	}
	if v, ok := set["visibility"]; ok {
		p.Visibility = v.(string)
	}
	if v, ok := set["tags"]; ok {
		p.Tags = v.([]string)
	}
	if v, ok := set["media_ids"]; ok {
		p.MediaIDs = v.([]string)
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (s *fakePostRepo) DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	p, ok := s.posts[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *fakePostRepo) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	s.incCalls = append(s.incCalls, field)
	if s.incErr != nil {
		return s.incErr
	}
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	switch field {
	case "likes_count":
		p.LikesCount += delta
	case "comments_count":
		p.CommentsCount += delta
	case "shares_count":
		p.SharesCount += delta
	}
	return nil
}

func (s *fakePostRepo) SetCounters(ctx context.Context, id primitive.ObjectID, likes, comments int64) error {
	s.setCounter[id] = [2]int64{likes, comments}
	if p, ok := s.posts[id]; ok {
		p.LikesCount = likes
		p.CommentsCount = comments
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*model.Comment)}
}

func (s *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *fakeCommentRepo) GetByID(ctx context.Context, postID, commentID primitive.ObjectID) (*model.Comment, error) {
	c, ok := s.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (s *fakeCommentRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := s.comments[id]
	return ok, nil
}

func (s *fakeCommentRepo) List(ctx context.Context, f repository.CommentFilter, w pagination.Window, _ bson.D) ([]*model.Comment, error) {
	var matched []*model.Comment
	for _, c := range s.comments {
		if c.PostID != f.PostID {
			continue
		}
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})
	if !w.HasCursor() && w.Offset < int64(len(matched)) {
		matched = matched[w.Offset:]
	}
	if int64(len(matched)) > w.Limit {
		matched = matched[:w.Limit]
	}
	return matched, nil
}

func (s *fakeCommentRepo) Count(ctx context.Context, f repository.CommentFilter) (int64, error) {
	count := int64(0)
	for _, c := range s.comments {
		if c.PostID != f.PostID {
			continue
		}
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		count++
	}
	return count, nil
}

func (s *fakeCommentRepo) UpdateOwned(ctx context.Context, postID, commentID primitive.ObjectID, userID string, set bson.M) (*model.Comment, error) {
	c, ok := s.comments[commentID]
	if !ok || c.PostID != postID || c.UserID != userID {
		return nil, nil
	}
	if v, ok := set["content"]; ok {
		c.Content = v.(string)
	}
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

func (s *fakeCommentRepo) DeleteOwned(ctx context.Context, commentID primitive.ObjectID, userID string) (bool, error) {
	c, ok := s.comments[commentID]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(s.comments, commentID)
	return true, nil
}

func (s *fakeCommentRepo) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	count := int64(0)
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
			count++
		}
	}
	return count, nil
}

func (s *fakeCommentRepo) ListIDsByPost(ctx context.Context, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, c := range s.comments {
		if c.PostID == postID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeCommentRepo) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	c, ok := s.comments[id]
	if !ok {
		return nil
	}
	switch field {
	case "likes_count":
		c.LikesCount += delta
	case "replies_count":
		c.RepliesCount += delta
	}
	return nil
}

func (s *fakeCommentRepo) CountReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	count := int64(0)
	for _, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (s *fakeCommentRepo) SetCounters(ctx context.Context, id primitive.ObjectID, likes, replies int64) error {
	if c, ok := s.comments[id]; ok {
		c.LikesCount = likes
		c.RepliesCount = replies
	}
	return nil
}

type reactionKey struct {
	userID     string
	targetID   primitive.ObjectID
	targetType string
}

type fakeReactionRepo struct {
	reactions map[reactionKey]*model.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[reactionKey]*model.Reaction)}
}

func (s *fakeReactionRepo) key(r *model.Reaction) reactionKey {
	return reactionKey{userID: r.UserID, targetID: r.TargetID, targetType: r.TargetType}
}

func (s *fakeReactionRepo) FindByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (*model.Reaction, error) {
	r, ok := s.reactions[reactionKey{userID, targetID, targetType}]
	if !ok {
		return nil, nil
	}
	clone := *r
	return &clone, nil
}

func (s *fakeReactionRepo) Insert(ctx context.Context, reaction *model.Reaction) error {
	k := s.key(reaction)
	if _, ok := s.reactions[k]; ok {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	now := time.Now().UTC()
	reaction.ID = primitive.NewObjectID()
	reaction.CreatedAt = now
	reaction.UpdatedAt = now
	clone := *reaction
	s.reactions[k] = &clone
	return nil
}

func (s *fakeReactionRepo) UpdateReactType(ctx context.Context, userID string, targetID primitive.ObjectID, targetType, reactType string) (*model.Reaction, error) {
	r, ok := s.reactions[reactionKey{userID, targetID, targetType}]
	if !ok {
		return nil, nil
	}
	r.ReactType = reactType
	r.UpdatedAt = time.Now().UTC()
	clone := *r
	return &clone, nil
}

func (s *fakeReactionRepo) DeleteByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (bool, error) {
	k := reactionKey{userID, targetID, targetType}
	if _, ok := s.reactions[k]; !ok {
		return false, nil
	}
	delete(s.reactions, k)
	return true, nil
}

func (s *fakeReactionRepo) List(ctx context.Context, f repository.ReactionFilter, w pagination.Window) ([]*model.Reaction, error) {
	var matched []*model.Reaction
	for _, r := range s.reactions {
		if r.TargetID != f.TargetID || r.TargetType != f.TargetType {
			continue
		}
		if f.ReactType != "" && r.ReactType != f.ReactType {
			continue
		}
		clone := *r
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})
	if !w.HasCursor() && w.Offset < int64(len(matched)) {
		matched = matched[w.Offset:]
	}
	if int64(len(matched)) > w.Limit {
		matched = matched[:w.Limit]
	}
	return matched, nil
}

func (s *fakeReactionRepo) Count(ctx context.Context, f repository.ReactionFilter) (int64, error) {
	count := int64(0)
	for _, r := range s.reactions {
		if r.TargetID != f.TargetID || r.TargetType != f.TargetType {
			continue
		}
		if f.ReactType != "" && r.ReactType != f.ReactType {
			continue
		}
		count++
	}
	return count, nil
}

func (s *fakeReactionRepo) DeleteByTarget(ctx context.Context, targetID primitive.ObjectID, targetType string) (int64, error) {
	count := int64(0)
	for k, r := range s.reactions {
		if r.TargetID == targetID && r.TargetType == targetType {
			delete(s.reactions, k)
			count++
		}
	}
	return count, nil
}

func (s *fakeReactionRepo) DeleteByTargets(ctx context.Context, targetIDs []primitive.ObjectID, targetType string) (int64, error) {
	count := int64(0)
	for _, id := range targetIDs {
		n, _ := s.DeleteByTarget(ctx, id, targetType)
		count += n
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}
