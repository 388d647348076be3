package services

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// In-memory stand-ins for the Mongo-backed stores. They implement the same
// set semantics the real stores get from $addToSet/$pull.

type memUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *memUserStore) Insert(_ context.Context, user models.User) error {
	u := user
	s.users[user.ID] = &u
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *memUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	found := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			found = append(found, *u)
		}
	}
	return found, nil
}

func (s *memUserStore) Search(_ context.Context, query string) ([]models.User, error) {
	query = strings.ToLower(query)
	var found []models.User
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Name), query) || strings.Contains(strings.ToLower(u.Email), query) {
			found = append(found, *u)
		}
	}
	return found, nil
}

func (s *memUserStore) Sample(_ context.Context, exclude []primitive.ObjectID, count int) ([]models.User, error) {
	var candidates []models.User
	for _, u := range s.users {
		if !containsID(exclude, u.ID) {
			candidates = append(candidates, *u)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (s *memUserStore) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return s.setAdd(userID, targetID, true)
}

func (s *memUserStore) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return s.setAdd(userID, followerID, false)
}

func (s *memUserStore) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return s.setRemove(userID, targetID, true)
}

func (s *memUserStore) RemoveFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return s.setRemove(userID, followerID, false)
}

func (s *memUserStore) setAdd(userID, value primitive.ObjectID, following bool) error {
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if following {
		u.Following = addID(u.Following, value)
	} else {
		u.Followers = addID(u.Followers, value)
	}
	return nil
}

func (s *memUserStore) setRemove(userID, value primitive.ObjectID, following bool) error {
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if following {
		u.Following = removeID(u.Following, value)
	} else {
		u.Followers = removeID(u.Followers, value)
	}
	return nil
}

func (s *memUserStore) ApplyProfileChanges(_ context.Context, id primitive.ObjectID, changes ProfileChanges) error {
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if changes.Name != "" {
		u.Name = changes.Name
	}
	if changes.Bio != "" {
		u.Bio = changes.Bio
	}
	if changes.ProfileImage != "" {
		u.ProfileImage = changes.ProfileImage
	}
	if changes.CoverImage != "" {
		u.CoverImage = changes.CoverImage
	}
	if changes.PasswordHash != "" {
		u.Password = changes.PasswordHash
	}
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.users, id)
	return nil
}

func (s *memUserStore) ScrubFromGraph(_ context.Context, id primitive.ObjectID) error {
	for _, u := range s.users {
		u.Followers = removeID(u.Followers, id)
		u.Following = removeID(u.Following, id)
	}
	return nil
}

type memPostStore struct {
	posts []models.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{}
}

func (s *memPostStore) Insert(_ context.Context, post models.Post) error {
	s.posts = append(s.posts, post)
	return nil
}

func (s *memPostStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Post, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *memPostStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	return s.FindByOwners(ctx, []primitive.ObjectID{ownerID})
}

func (s *memPostStore) FindByOwners(_ context.Context, ownerIDs []primitive.ObjectID) ([]models.Post, error) {
	var found []models.Post
	for _, p := range s.posts {
		if containsID(ownerIDs, p.User) {
			found = append(found, p)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return found, nil
}

func (s *memPostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Likes = addID(s.posts[i].Likes, userID)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memPostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memPostStore) DeleteByOwner(_ context.Context, ownerID primitive.ObjectID) error {
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.User != ownerID {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}

type memFeedCache struct {
	entries     map[primitive.ObjectID][]models.FeedPost
	invalidated []primitive.ObjectID
}

func newMemFeedCache() *memFeedCache {
	return &memFeedCache{entries: make(map[primitive.ObjectID][]models.FeedPost)}
}

func (c *memFeedCache) Get(_ context.Context, userID primitive.ObjectID) ([]models.FeedPost, bool) {
	feed, ok := c.entries[userID]
	return feed, ok
}

func (c *memFeedCache) Set(_ context.Context, userID primitive.ObjectID, feed []models.FeedPost) {
	c.entries[userID] = feed
}

func (c *memFeedCache) Invalidate(_ context.Context, userIDs ...primitive.ObjectID) {
	for _, id := range userIDs {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
}

type memImageStore struct {
	removed []string
}

func (s *memImageStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
