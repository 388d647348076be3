package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/controllers"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/middlewares"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/routes"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

const (
	testSecret  = "controller-test-secret"
	testBaseURL = "http://localhost:8080"
)

// memUserStore / memPostStore mirror the set semantics of the Mongo stores.

type memUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func (s *memUserStore) Insert(_ context.Context, user models.User) error {
	u := user
	s.users[user.ID] = &u
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, services.ErrNotFound
	}
	return *u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, services.ErrNotFound
}

func (s *memUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var found []models.User
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
		excluded := false
		for _, id := range exclude {
			if id == u.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			candidates = append(candidates, *u)
		}
	}
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (s *memUserStore) edit(id primitive.ObjectID, fn func(*models.User)) error {
	u, ok := s.users[id]
	if !ok {
		return services.ErrNotFound
	}
	fn(u)
	return nil
}

func (s *memUserStore) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return s.edit(userID, func(u *models.User) { u.Following = addID(u.Following, targetID) })
}

func (s *memUserStore) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return s.edit(userID, func(u *models.User) { u.Followers = addID(u.Followers, followerID) })
}

func (s *memUserStore) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return s.edit(userID, func(u *models.User) { u.Following = removeID(u.Following, targetID) })
}

func (s *memUserStore) RemoveFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return s.edit(userID, func(u *models.User) { u.Followers = removeID(u.Followers, followerID) })
}

func (s *memUserStore) ApplyProfileChanges(_ context.Context, id primitive.ObjectID, changes services.ProfileChanges) error {
	return s.edit(id, func(u *models.User) {
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
	})
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
	return models.Post{}, services.ErrNotFound
}

func (s *memPostStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	return s.FindByOwners(ctx, []primitive.ObjectID{ownerID})
}

func (s *memPostStore) FindByOwners(_ context.Context, ownerIDs []primitive.ObjectID) ([]models.Post, error) {
	var found []models.Post
	for _, p := range s.posts {
		for _, owner := range ownerIDs {
			if p.User == owner {
				found = append(found, p)
				break
			}
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
	return services.ErrNotFound
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

type memImage struct {
	data        []byte
	contentType string
}

type memImageStorage struct {
	objects map[string]memImage
}

func (s *memImageStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = memImage{data: data, contentType: contentType}
	return nil
}

func (s *memImageStorage) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", services.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

func (s *memImageStorage) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
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

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserStore{users: make(map[primitive.ObjectID]*models.User)}
	posts := &memPostStore{}
	images := &memImageStorage{objects: make(map[string]memImage)}

	userService := services.NewUserService(users, posts, nil, "http://cdn/dp.png", "http://cdn/cover.png")
	followService := services.NewFollowService(users, nil)
	feedService := services.NewFeedService(users, posts, nil)
	postService := services.NewPostService(posts, users, images, nil)

	secret := []byte(testSecret)
	router := gin.New()
	routes.AuthRouter(router, controllers.NewAuthController(userService, secret, 24*time.Hour))
	requireAuth := middlewares.RequireAuth(userService, secret)
	routes.UserRouter(router, requireAuth, controllers.NewUserController(userService, followService, images, testBaseURL))
	routes.PostRouter(router, requireAuth, controllers.NewPostController(postService, feedService, images, testBaseURL))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

// registerUser registers through the API and returns (id, token).
func registerUser(t *testing.T, router *gin.Engine, name, email, password string) (string, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", name, w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]any)
	return data["id"].(string), data["token"].(string)
}

func doMultipart(t *testing.T, router *gin.Engine, path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
