package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frazhaidry/DebugDairy/database"
	"github.com/frazhaidry/DebugDairy/models"
)

type mongoCommentRepository struct {
	col *mongo.Collection
}

// NewCommentRepository returns a CommentRepository backed by the comments
// collection.
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &mongoCommentRepository{col: db.Collection(database.CommentsCollection)}
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, comment)
	return err
}

func (r *mongoCommentRepository) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"postId": postID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *mongoCommentRepository) FindByIDUnderPost(ctx context.Context, commentID, postID primitive.ObjectID) (*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var comment models.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": commentID, "postId": postID}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *mongoCommentRepository) Delete(ctx context.Context, commentID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": commentID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
