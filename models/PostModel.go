package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id"`
	User        primitive.ObjectID   `json:"user" bson:"user"`
	PostImage   string               `json:"postImage" bson:"postImage"`
	Description string               `json:"description" bson:"description"`
	Likes       []primitive.ObjectID `json:"likes" bson:"likes"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}

// AuthorRef carries the denormalized owner fields embedded in feed entries
// so clients need no second lookup.
type AuthorRef struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	ProfileImage string             `json:"profileImage"`
}

// FeedPost is a post with its author resolved.
type FeedPost struct {
	ID          primitive.ObjectID   `json:"_id"`
	User        AuthorRef            `json:"user"`
	PostImage   string               `json:"postImage"`
	Description string               `json:"description"`
	Likes       []primitive.ObjectID `json:"likes"`
	CreatedAt   time.Time            `json:"createdAt"`
}
