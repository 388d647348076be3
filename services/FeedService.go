package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// FeedCache fronts feed assembly. Implementations must treat every call as
// best-effort; a miss only costs a rebuild.
type FeedCache interface {
	Get(ctx context.Context, userID primitive.ObjectID) ([]models.FeedPost, bool)
	Set(ctx context.Context, userID primitive.ObjectID, feed []models.FeedPost)
	Invalidate(ctx context.Context, userIDs ...primitive.ObjectID)
}

// FeedService assembles chronological feeds: the posts of everyone a user
// follows plus the user's own, newest first, with author fields denormalized
// into each entry.
type FeedService struct {
	users UserStore
	posts PostStore
	cache FeedCache
}

func NewFeedService(users UserStore, posts PostStore, cache FeedCache) *FeedService {
	return &FeedService{users: users, posts: posts, cache: cache}
}

// FeedFor returns the feed of the given user.
func (s *FeedService) FeedFor(ctx context.Context, userID primitive.ObjectID) ([]models.FeedPost, error) {
	if s.cache != nil {
		if feed, ok := s.cache.Get(ctx, userID); ok {
			return feed, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	owners := append([]primitive.ObjectID{userID}, user.Following...)
	posts, err := s.posts.FindByOwners(ctx, owners)
	if err != nil {
		return nil, err
	}

	feed, err := s.denormalize(ctx, posts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, feed)
	}
	return feed, nil
}

// PostsBy returns all posts owned by the given user, newest first, with the
// author resolved. Visible to any authenticated caller regardless of follow
// state.
func (s *FeedService) PostsBy(ctx context.Context, ownerID primitive.ObjectID) ([]models.FeedPost, error) {
	posts, err := s.posts.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.denormalize(ctx, posts)
}

func (s *FeedService) denormalize(ctx context.Context, posts []models.Post) ([]models.FeedPost, error) {
	seen := make(map[primitive.ObjectID]bool)
	ownerIDs := make([]primitive.ObjectID, 0)
	for _, p := range posts {
		if !seen[p.User] {
			seen[p.User] = true
			ownerIDs = append(ownerIDs, p.User)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.User, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		author := models.AuthorRef{ID: p.User}
		if owner, ok := byID[p.User]; ok {
			author.Name = owner.Name
			author.ProfileImage = owner.ProfileImage
		}
		feed = append(feed, models.FeedPost{
			ID:          p.ID,
			User:        author,
			PostImage:   p.PostImage,
			Description: p.Description,
			Likes:       p.Likes,
			CreatedAt:   p.CreatedAt,
		})
	}
	return feed, nil
}
