package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id"`
	Name         string               `json:"name" bson:"name" validate:"required"`
	Email        string               `json:"email" bson:"email" validate:"required,email"`
	Password     string               `json:"-" bson:"password" validate:"required,min=6"`
	Bio          string               `json:"bio" bson:"bio"`
	ProfileImage string               `json:"profileImage" bson:"profileImage"`
	CoverImage   string               `json:"coverImage" bson:"coverImage"`
	Followers    []primitive.ObjectID `json:"followers" bson:"followers"`
	Following    []primitive.ObjectID `json:"following" bson:"following"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
}

// UserSummary is the password-free projection sent in follower lists,
// suggestions and search results.
type UserSummary struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Bio          string             `json:"bio" bson:"bio"`
	ProfileImage string             `json:"profileImage" bson:"profileImage"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
	}
}
