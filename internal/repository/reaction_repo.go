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

// ReactionFilter 表态列表过滤条件，目标二元组必填
type ReactionFilter struct {
	TargetID   primitive.ObjectID
	TargetType string
	ReactType  string
}

func (f ReactionFilter) query() bson.M {
	q := bson.M{"target_id": f.TargetID, "target_type": f.TargetType}
	if f.ReactType != "" {
		q["react_type"] = f.ReactType
	}
	return q
}

type ReactionRepo interface {
	FindByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (*model.Reaction, error)
	Insert(ctx context.Context, reaction *model.Reaction) error
	UpdateReactType(ctx context.Context, userID string, targetID primitive.ObjectID, targetType, reactType string) (*model.Reaction, error)
	DeleteByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (bool, error)
	List(ctx context.Context, f ReactionFilter, w pagination.Window) ([]*model.Reaction, error)
	Count(ctx context.Context, f ReactionFilter) (int64, error)
	DeleteByTarget(ctx context.Context, targetID primitive.ObjectID, targetType string) (int64, error)
	DeleteByTargets(ctx context.Context, targetIDs []primitive.ObjectID, targetType string) (int64, error)
}

type reactionRepoImpl struct {
	col *mongo.Collection
}

func NewReactionRepo(db *mongo.Database) ReactionRepo {
	return &reactionRepoImpl{
		col: db.Collection(model.Reaction{}.CollectionName()),
	}
}

func (s *reactionRepoImpl) FindByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := s.col.FindOne(ctx, bson.M{
		"user_id":     userID,
		"target_id":   targetID,
		"target_type": targetType,
	}).Decode(&reaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find reaction")
	}
	return &reaction, nil
}

// Insert 依赖 (user_id, target_id, target_type) 唯一索引，重复插入返回重复键错误
func (s *reactionRepoImpl) Insert(ctx context.Context, reaction *model.Reaction) error {
	now := time.Now().UTC()
	reaction.CreatedAt = now
	reaction.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, reaction)
	if err != nil {
		return err
	}
	reaction.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateReactType 原地覆盖表态类型，计数由调用方决定是否调整
func (s *reactionRepoImpl) UpdateReactType(ctx context.Context, userID string, targetID primitive.ObjectID, targetType, reactType string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "target_id": targetID, "target_type": targetType},
		bson.M{"$set": bson.M{"react_type": reactType, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&reaction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update reaction")
	}
	return &reaction, nil
}

func (s *reactionRepoImpl) DeleteByUserTarget(ctx context.Context, userID string, targetID primitive.ObjectID, targetType string) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{
		"user_id":     userID,
		"target_id":   targetID,
		"target_type": targetType,
	})
	if err != nil {
		return false, errors.Wrap(err, "delete reaction")
	}
	return res.DeletedCount > 0, nil
}

func (s *reactionRepoImpl) List(ctx context.Context, f ReactionFilter, w pagination.Window) ([]*model.Reaction, error) {
	filter := f.query()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
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
		return nil, errors.Wrap(err, "list reactions")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var reactions []*model.Reaction
	if err := cursor.All(ctx, &reactions); err != nil {
		return nil, errors.Wrap(err, "decode reactions")
	}
	return reactions, nil
}

func (s *reactionRepoImpl) Count(ctx context.Context, f ReactionFilter) (int64, error) {
	count, err := s.col.CountDocuments(ctx, f.query())
	if err != nil {
		return 0, errors.Wrap(err, "count reactions")
	}
	return count, nil
}

func (s *reactionRepoImpl) DeleteByTarget(ctx context.Context, targetID primitive.ObjectID, targetType string) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"target_id": targetID, "target_type": targetType})
	if err != nil {
		return 0, errors.Wrap(err, "delete reactions by target")
	}
	return res.DeletedCount, nil
}

func (s *reactionRepoImpl) DeleteByTargets(ctx context.Context, targetIDs []primitive.ObjectID, targetType string) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	res, err := s.col.DeleteMany(ctx, bson.M{
		"target_id":   bson.M{"$in": targetIDs},
		"target_type": targetType,
	})
	if err != nil {
		return 0, errors.Wrap(err, "delete reactions by targets")
	}
	return res.DeletedCount, nil
}
