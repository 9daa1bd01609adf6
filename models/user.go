package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored credential record. Password carries the bcrypt hash and
// is never serialized to clients; reads exclude it unless the caller asks
// for it explicitly (login comparison).
type User struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Password   string             `json:"-" bson:"password" validate:"required"`
	IsVerified bool               `json:"isVerified" bson:"isVerified"`
	IsAdmin    bool               `json:"isAdmin" bson:"isAdmin"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Author is the public projection used when a post's creator or like-set is
// populated into a response.
type Author struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// CommentAuthor is the projection populated onto comments.
type CommentAuthor struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// Author returns the user's post-side projection.
func (u User) Author() Author {
	return Author{ID: u.ID, Name: u.Name}
}

// CommentAuthor returns the user's comment-side projection.
func (u User) CommentAuthor() CommentAuthor {
	return CommentAuthor{ID: u.ID, Name: u.Name, Email: u.Email}
}
