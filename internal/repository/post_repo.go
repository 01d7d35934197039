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

// PostFilter 帖子列表过滤条件
type PostFilter struct {
	UserID string
	Status *bool
	Tags   []string
	Q      string
}

func (f PostFilter) query() bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if f.Status != nil {
		q["is_moderated"] = *f.Status
	}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags}
	}
	if f.Q != "" {
		q["$text"] = bson.M{"$search": f.Q}
	}
	return q
}

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, f PostFilter, w pagination.Window, sort bson.D) ([]*model.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	UpdateOwned(ctx context.Context, id primitive.ObjectID, userID string, set bson.M) (*model.Post, error)
	DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
	IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error
	SetCounters(ctx context.Context, id primitive.ObjectID, likes, comments int64) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection(model.Post{}.CollectionName()),
	}
}

func (s *postRepoImpl) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return errors.Wrap(err, "insert post")
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID 文档不存在时返回 (nil, nil)
func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find post")
	}
	return &post, nil
}

func (s *postRepoImpl) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "count post")
	}
	return count > 0, nil
}

func (s *postRepoImpl) List(ctx context.Context, f PostFilter, w pagination.Window, sort bson.D) ([]*model.Post, error) {
	filter := f.query()

	findOptions := options.Find().SetSort(sort).SetLimit(w.Limit)
	if w.HasCursor() {
		// 游标模式：_id 严格大于游标，offset 不参与
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
		return nil, errors.Wrap(err, "list posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	return posts, nil
}

func (s *postRepoImpl) Count(ctx context.Context, f PostFilter) (int64, error) {
	count, err := s.col.CountDocuments(ctx, f.query())
	if err != nil {
		return 0, errors.Wrap(err, "count posts")
	}
	return count, nil
}

// UpdateOwned 更新条件同时包含 id 与 user_id，未命中返回 (nil, nil)
// 调用方据此报 "not found or access denied"，不区分两种情况
func (s *postRepoImpl) UpdateOwned(ctx context.Context, id primitive.ObjectID, userID string, set bson.M) (*model.Post, error) {
	set["updated_at"] = time.Now().UTC()

	var post model.Post
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update post")
	}
	return &post, nil
}

func (s *postRepoImpl) DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, errors.Wrap(err, "delete post")
	}
	return res.DeletedCount > 0, nil
}

// IncField 单文档原子增减，不做下限钳制
func (s *postRepoImpl) IncField(ctx context.Context, id primitive.ObjectID, field string, delta int64) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{field: delta}})
	return errors.Wrap(err, "inc post counter")
}

// SetCounters 校准任务用：以源数据重算结果覆盖计数
func (s *postRepoImpl) SetCounters(ctx context.Context, id primitive.ObjectID, likes, comments int64) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"likes_count":    likes,
		"comments_count": comments,
	}})
	return errors.Wrap(err, "set post counters")
}
