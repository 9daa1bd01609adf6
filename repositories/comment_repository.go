package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frazhaidry/DebugDairy/models"
)

// CommentRepository is the content store for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// FindByPost returns the post's comments newest first.
	FindByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
	// FindByIDUnderPost resolves a comment only if it belongs to the post.
	FindByIDUnderPost(ctx context.Context, commentID, postID primitive.ObjectID) (*models.Comment, error)
	Delete(ctx context.Context, commentID primitive.ObjectID) error
}
