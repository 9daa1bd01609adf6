package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frazhaidry/DebugDairy/database"
	"github.com/frazhaidry/DebugDairy/models"
)

type mongoPostRepository struct {
	col *mongo.Collection
}

// NewPostRepository returns a PostRepository backed by the posts collection.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{col: db.Collection(database.PostsCollection)}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, post)
	return err
}

func (r *mongoPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var post models.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	set["updatedAt"] = time.Now()

	var post models.Post
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike never reads the like-set into memory. Each branch is a single
// conditional update, so concurrent togglers from different users cannot
// lose each other's writes.
func (r *mongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	opCtx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	now := time.Now()

	res, err := r.col.UpdateOne(opCtx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$set": bson.M{"updatedAt": now}},
	)
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		res, err = r.col.UpdateOne(opCtx,
			bson.M{"_id": postID, "likes": userID},
			bson.M{"$pull": bson.M{"likes": userID}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			// neither branch matched: the post is gone, or a concurrent
			// toggle by the same user slipped between the two updates
			if _, err := r.FindByID(ctx, postID); err != nil {
				return nil, err
			}
			return nil, errors.New("like toggle raced, retry")
		}
	}

	return r.FindByID(ctx, postID)
}
