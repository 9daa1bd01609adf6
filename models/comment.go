package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a stored comment under a post. Comments are created and
// deleted, never edited.
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	PostID    primitive.ObjectID `json:"postId" bson:"postId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CommentView is the response shape with the author reference resolved.
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	PostID    primitive.ObjectID `json:"postId"`
	Author    CommentAuthor      `json:"userId"`
	Body      string             `json:"body"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
