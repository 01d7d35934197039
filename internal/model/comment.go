package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 评论文档模型，parent_id 非空表示这是一条回复
type Comment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	PostID       primitive.ObjectID `bson:"post_id"`
	ParentID     *primitive.ObjectID `bson:"parent_id"`
	Content      string             `bson:"content"`
	MediaIDs     []string           `bson:"media_ids"`
	Tags         []string           `bson:"tags"`
	LikesCount   int64              `bson:"likes_count"`
	RepliesCount int64              `bson:"replies_count"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (Comment) CollectionName() string {
	return "comments"
}
