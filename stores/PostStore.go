package stores

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

// PostStore persists posts in the posts collection.
type PostStore struct {
	col *mongo.Collection
}

func NewPostStore(col *mongo.Collection) *PostStore {
	return &PostStore{col: col}
}

func (s *PostStore) Insert(ctx context.Context, post models.Post) error {
	_, err := s.col.InsertOne(ctx, post)
	return err
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var post models.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Post{}, services.ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func (s *PostStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"user": ownerID})
}

func (s *PostStore) FindByOwners(ctx context.Context, ownerIDs []primitive.ObjectID) ([]models.Post, error) {
	if len(ownerIDs) == 0 {
		return []models.Post{}, nil
	}
	return s.find(ctx, bson.M{"user": bson.M{"$in": ownerIDs}})
}

func (s *PostStore) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddLike adds the user to the post's likers. $addToSet keeps likes a set:
// re-liking changes nothing.
func (s *PostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *PostStore) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"user": ownerID})
	return err
}
