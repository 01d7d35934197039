package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// Post 帖子文档模型
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	Content       string             `bson:"content"`
	MediaIDs      []string           `bson:"media_ids"`
	Tags          []string           `bson:"tags"`
	PostShareID   *string            `bson:"post_share_id"`
	GroupID       *string            `bson:"group_id"`
	Visibility    string             `bson:"visibility"` // public / friends / private
	LikesCount    int64              `bson:"likes_count"`
	CommentsCount int64              `bson:"comments_count"`
	SharesCount   int64              `bson:"shares_count"`
	IsModerated   bool               `bson:"is_moderated"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (Post) CollectionName() string {
	return "posts"
}
