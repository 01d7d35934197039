package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TargetTypePost    = "post"
	TargetTypeComment = "comment"
)

// ReactTypes 允许的表态类型
var ReactTypes = []string{"like", "love", "haha", "wow", "sad", "angry"}

// Reaction 表态文档模型
// (user_id, target_id, target_type) 三元组唯一：一个用户对一个目标最多持有一条表态
type Reaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	TargetID   primitive.ObjectID `bson:"target_id"`
	TargetType string             `bson:"target_type"` // post / comment
	ReactType  string             `bson:"react_type"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (Reaction) CollectionName() string {
	return "reactions"
}
