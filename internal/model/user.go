package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 账号文档模型，username 唯一
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (User) CollectionName() string {
	return "users"
}
