package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// UserStore defines persistence operations for users. Follow-edge mutations
// are expressed as set-add/set-remove primitives so concurrent callers
// converge without lost updates.
type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Sample(ctx context.Context, exclude []primitive.ObjectID, count int) ([]models.User, error)
	AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	ApplyProfileChanges(ctx context.Context, id primitive.ObjectID, changes ProfileChanges) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ScrubFromGraph(ctx context.Context, id primitive.ObjectID) error
}

// ProfileChanges lists profile fields to overwrite; empty fields are left
// untouched.
type ProfileChanges struct {
	Name         string
	Bio          string
	ProfileImage string
	CoverImage   string
	PasswordHash string
}

// UserService covers registration, authentication, profile management and
// account deletion.
type UserService struct {
	users UserStore
	posts PostStore
	cache FeedCache

	defaultDp    string
	defaultCover string
}

func NewUserService(users UserStore, posts PostStore, cache FeedCache, defaultDp, defaultCover string) *UserService {
	return &UserService{
		users:        users,
		posts:        posts,
		cache:        cache,
		defaultDp:    defaultDp,
		defaultCover: defaultCover,
	}
}

// Register creates a new account with a bcrypt-hashed password and
// placeholder profile images.
func (s *UserService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, ErrValidation
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		ProfileImage: s.defaultDp,
		CoverImage:   s.defaultCover,
		Followers:    []primitive.ObjectID{},
		Following:    []primitive.ObjectID{},
		CreatedAt:    time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks the email/password pair and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Search matches users by name or email substring, case-insensitive.
func (s *UserService) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	results := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		results = append(results, u.Summary())
	}
	return results, nil
}

// ProfileUpdate carries the optional fields of an update-profile request.
type ProfileUpdate struct {
	Name         string
	Bio          string
	ProfileImage string
	CoverImage   string
	OldPassword  string
	NewPassword  string
}

// UpdateProfile applies the provided fields. A password change requires the
// old password to match.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	changes := ProfileChanges{
		Name:         upd.Name,
		Bio:          upd.Bio,
		ProfileImage: upd.ProfileImage,
		CoverImage:   upd.CoverImage,
	}

	if upd.OldPassword != "" && upd.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(upd.OldPassword)); err != nil {
			return models.User{}, ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		changes.PasswordHash = string(hashed)
	}

	if err := s.users.ApplyProfileChanges(ctx, id, changes); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, id)
}

// DeleteAccount removes the user, every post they own, and their id from all
// other users' follower/following arrays. The steps are independent and each
// is idempotent, so a retry after partial failure converges.
func (s *UserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.posts.DeleteByOwner(ctx, id); err != nil {
		return err
	}
	if err := s.users.ScrubFromGraph(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		audience := append(append([]primitive.ObjectID{id}, user.Followers...), user.Following...)
		s.cache.Invalidate(ctx, audience...)
	}
	return nil
}
