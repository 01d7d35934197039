package repository

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/pagination"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentFilter 评论列表过滤条件，PostID 必填
type CommentFilter struct {
	PostID primitive.ObjectID
	UserID string
}

func (f CommentFilter) query() bson.M {
	q := bson.M{"post_id": f.PostID}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	return q
}

type CommentRepo interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, postID, commentID primitive.ObjectID) (*model.Comment, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, f CommentFilter, w pagination.Window, sort bson.D) ([]*model.Comment, error)
	Count(ctx context.Context, f CommentFilter) (int64, error)
	UpdateOwned(ctx context.Context, postID, commentID primitive.ObjectID, userID string, set bson.M) (*model.Comment, error)
	DeleteOwned(ctx context.Context, commentID primitive.ObjectID, userID string) (bool, error)
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
	ListIDsByPost(ctx context.Context, postID primitive.ObjectID) ([]primitive.ObjectID, error)
	IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error
	CountReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error)
	SetCounters(ctx context.Context, id primitive.ObjectID, likes, replies int64) error
}

type commentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{
		col: db.Collection(model.Comment{}.CollectionName()),
	}
}

func (s *commentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, comment)
	if err != nil {
		return errors.Wrap(err, "insert comment")
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID 查询始终以 post_id 限定范围，文档不存在时返回 (nil, nil)
func (s *commentRepoImpl) GetByID(ctx context.Context, postID, commentID primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := s.col.FindOne(ctx, bson.M{"_id": commentID, "post_id": postID}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find comment")
	}
	return &comment, nil
}

func (s *commentRepoImpl) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "count comment")
	}
	return count > 0, nil
}

func (s *commentRepoImpl) List(ctx context.Context, f CommentFilter, w pagination.Window, sort bson.D) ([]*model.Comment, error) {
	filter := f.query()

	findOptions := options.Find().
		SetSort(sort).
		SetLimit(w.Limit)
	if w.HasCursor() {
		cursorID, err := w.CursorID()
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$gt": cursorID}
	} else {
		findOptions.SetSkip(w.Offset)
	}

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var comments []*model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode comments")
	}
	return comments, nil
}

func (s *commentRepoImpl) Count(ctx context.Context, f CommentFilter) (int64, error) {
	count, err := s.col.CountDocuments(ctx, f.query())
	if err != nil {
		return 0, errors.Wrap(err, "count comments")
	}
	return count, nil
}

// UpdateOwned 更新条件合取 id、post_id 与 user_id，未命中返回 (nil, nil)
func (s *commentRepoImpl) UpdateOwned(ctx context.Context, postID, commentID primitive.ObjectID, userID string, set bson.M) (*model.Comment, error) {
	set["updated_at"] = time.Now().UTC()

	var comment model.Comment
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": commentID, "post_id": postID, "user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update comment")
	}
	return &comment, nil
}

func (s *commentRepoImpl) DeleteOwned(ctx context.Context, commentID primitive.ObjectID, userID string) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": commentID, "user_id": userID})
	if err != nil {
		return false, errors.Wrap(err, "delete comment")
	}
	return res.DeletedCount > 0, nil
}

func (s *commentRepoImpl) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, errors.Wrap(err, "delete comments by post")
	}
	return res.DeletedCount, nil
}

// ListIDsByPost 级联清理表态时取帖子下全部评论 ID
func (s *commentRepoImpl) ListIDsByPost(ctx context.Context, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := s.col.Find(ctx, bson.M{"post_id": postID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(err, "list comment ids")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode comment ids")
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (s *commentRepoImpl) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{field: delta}})
	return errors.Wrap(err, "inc comment counter")
}

func (s *commentRepoImpl) CountReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"parent_id": parentID})
	if err != nil {
		return 0, errors.Wrap(err, "count replies")
	}
	return count, nil
}

func (s *commentRepoImpl) SetCounters(ctx context.Context, id primitive.ObjectID, likes, replies int64) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"likes_count":   likes,
		"replies_count": replies,
	}})
	return errors.Wrap(err, "set comment counters")
}
