package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/models"
)

// PostRepository is the content store for documentation posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// Update applies a partial $set and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ToggleLike atomically adds the user to the like-set if absent, removes
	// it if present, and returns the post afterwards.
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
}
