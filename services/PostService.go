package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// PostStore defines persistence operations for posts. Like mutations are
// set-adds so repeated likes by the same user collapse to one entry.
type PostStore interface {
	Insert(ctx context.Context, post models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error)
	FindByOwners(ctx context.Context, ownerIDs []primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error
}

// ImageStore is the slice of the object store the post lifecycle needs for
// cleaning up the image behind a deleted post.
type ImageStore interface {
	Remove(ctx context.Context, key string) error
}

// PostService covers the post lifecycle: create, get, delete, like.
type PostService struct {
	posts  PostStore
	users  UserStore
	images ImageStore
	cache  FeedCache
}

func NewPostService(posts PostStore, users UserStore, images ImageStore, cache FeedCache) *PostService {
	return &PostService{posts: posts, users: users, images: images, cache: cache}
}

// Create stores a new post owned by ownerID. The image reference is
// required; the caption is not.
func (s *PostService) Create(ctx context.Context, ownerID primitive.ObjectID, imageRef, caption string) (models.Post, error) {
	if strings.TrimSpace(imageRef) == "" {
		return models.Post{}, ErrValidation
	}

	post := models.Post{
		ID:          primitive.NewObjectID(),
		User:        ownerID,
		PostImage:   imageRef,
		Description: caption,
		Likes:       []primitive.ObjectID{},
		CreatedAt:   time.Now(),
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return models.Post{}, err
	}

	s.invalidateAudience(ctx, ownerID)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Delete removes a post entirely. Only the owner may delete; the backing
// image object is removed best-effort.
func (s *PostService) Delete(ctx context.Context, id, actorID primitive.ObjectID) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.User != actorID {
		return ErrNotOwner
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if s.images != nil {
		if key, ok := imageKeyFromRef(post.PostImage); ok {
			s.images.Remove(ctx, key)
		}
	}

	s.invalidateAudience(ctx, actorID)
	return nil
}

// Like adds the actor to the post's likers. Liking an already-liked post is
// a no-op; there is no unlike.
func (s *PostService) Like(ctx context.Context, id, actorID primitive.ObjectID) error {
	return s.posts.AddLike(ctx, id, actorID)
}

// invalidateAudience drops the cached feeds that could contain the owner's
// posts: the owner's own and every follower's.
func (s *PostService) invalidateAudience(ctx context.Context, ownerID primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	audience := []primitive.ObjectID{ownerID}
	if owner, err := s.users.FindByID(ctx, ownerID); err == nil {
		audience = append(audience, owner.Followers...)
	}
	s.cache.Invalidate(ctx, audience...)
}

// imageKeyFromRef extracts the object key from an image URL served by this
// API. References pointing elsewhere (CDN placeholders, external URLs) have
// nothing to clean up.
func imageKeyFromRef(ref string) (string, bool) {
	const marker = "/api/image/"
	idx := strings.LastIndex(ref, marker)
	if idx < 0 {
		return "", false
	}
	key := ref[idx+len(marker):]
	return key, key != ""
}
