package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// FollowService owns the bidirectional follow graph. Every edge mutation
// touches both adjacency directions: target in actor.following and actor in
// target.followers. The actor side is written first; if the mirror write
// fails the edge is transiently asymmetric, and because both writes are
// idempotent set operations a retry converges to the fully-applied state.
type FollowService struct {
	users UserStore
	cache FeedCache
}

func NewFollowService(users UserStore, cache FeedCache) *FollowService {
	return &FollowService{users: users, cache: cache}
}

// Follow adds the edge actor -> target. Repeated calls are no-ops.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return err
	}
	if err := s.users.AddFollower(ctx, targetID, actorID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, actorID)
	}
	return nil
}

// Unfollow removes the edge in both directions. Removing an absent edge is
// a no-op.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
		return err
	}
	if err := s.users.RemoveFollower(ctx, targetID, actorID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, actorID)
	}
	return nil
}

// Followers resolves the members of the user's followers array.
func (s *FollowService) Followers(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Followers)
}

// Following resolves the members of the user's following array.
func (s *FollowService) Following(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Following)
}

// Suggest returns up to count users the given user does not follow yet,
// excluding the user themselves. Selection is a random sample, not a
// ranking; fewer candidates than count yields all of them.
func (s *FollowService) Suggest(ctx context.Context, userID primitive.ObjectID, count int) ([]models.UserSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := append([]primitive.ObjectID{userID}, user.Following...)
	candidates, err := s.users.Sample(ctx, exclude, count)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.UserSummary, 0, len(candidates))
	for _, u := range candidates {
		suggestions = append(suggestions, u.Summary())
	}
	return suggestions, nil
}

func (s *FollowService) resolve(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}
