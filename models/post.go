package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a stored documentation write-up. Likes is a set: the store layer
// only ever mutates it with $addToSet/$pull, so it holds no duplicates.
type Post struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id"`
	Title         string               `json:"title" bson:"title"`
	Problem       string               `json:"problem" bson:"problem"`
	Solution      string               `json:"solution" bson:"solution"`
	ResourceLinks []string             `json:"resourceLinks" bson:"resourceLinks"`
	Tags          []string             `json:"tags" bson:"tags"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	Likes         []primitive.ObjectID `json:"likes" bson:"likes"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PostView is the response shape with author references resolved to public
// projections.
type PostView struct {
	ID            primitive.ObjectID `json:"_id"`
	Title         string             `json:"title"`
	Problem       string             `json:"problem"`
	Solution      string             `json:"solution"`
	ResourceLinks []string           `json:"resourceLinks"`
	Tags          []string           `json:"tags"`
	CreatedBy     Author             `json:"createdBy"`
	Likes         []Author           `json:"likes"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
