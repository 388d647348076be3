package stores

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

// UserStore persists users in the users collection.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

func (s *UserStore) Insert(ctx context.Context, user models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, services.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Search matches the query as a case-insensitive substring of name or email.
func (s *UserStore) Search(ctx context.Context, query string) ([]models.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"email": pattern},
	}}

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Sample returns up to count users not in the exclude list, chosen at
// random by the server.
func (s *UserStore) Sample(ctx context.Context, exclude []primitive.ObjectID, count int) ([]models.User, error) {
	if count <= 0 {
		return []models.User{}, nil
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": bson.M{"$nin": exclude}}}},
		bson.D{{Key: "$sample", Value: bson.M{"size": count}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return s.updateSet(ctx, userID, "$addToSet", "following", targetID)
}

func (s *UserStore) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return s.updateSet(ctx, userID, "$addToSet", "followers", followerID)
}

func (s *UserStore) RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return s.updateSet(ctx, userID, "$pull", "following", targetID)
}

func (s *UserStore) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return s.updateSet(ctx, userID, "$pull", "followers", followerID)
}

func (s *UserStore) updateSet(ctx context.Context, userID primitive.ObjectID, op, field string, value primitive.ObjectID) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{op: bson.M{field: value}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *UserStore) ApplyProfileChanges(ctx context.Context, id primitive.ObjectID, changes services.ProfileChanges) error {
	set := bson.M{}
	if changes.Name != "" {
		set["name"] = changes.Name
	}
	if changes.Bio != "" {
		set["bio"] = changes.Bio
	}
	if changes.ProfileImage != "" {
		set["profileImage"] = changes.ProfileImage
	}
	if changes.CoverImage != "" {
		set["coverImage"] = changes.CoverImage
	}
	if changes.PasswordHash != "" {
		set["password"] = changes.PasswordHash
	}
	if len(set) == 0 {
		return nil
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ScrubFromGraph pulls the user id out of every other user's followers and
// following arrays. Both updates are idempotent.
func (s *UserStore) ScrubFromGraph(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.col.UpdateMany(ctx,
		bson.M{"followers": id},
		bson.M{"$pull": bson.M{"followers": id}},
	); err != nil {
		return err
	}
	_, err := s.col.UpdateMany(ctx,
		bson.M{"following": id},
		bson.M{"$pull": bson.M{"following": id}},
	)
	return err
}
