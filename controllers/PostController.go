package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

type PostController struct {
	posts   *services.PostService
	feed    *services.FeedService
	images  ImageStorage
	baseURL string
}

func NewPostController(posts *services.PostService, feed *services.FeedService, images ImageStorage, baseURL string) *PostController {
	return &PostController{posts: posts, feed: feed, images: images, baseURL: baseURL}
}

type CreatePostRequest struct {
	PostImage   string `json:"postImage"`
	Description string `json:"description"`
}

func (pc *PostController) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := pc.posts.Create(c.Request.Context(), user.ID, req.PostImage, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
		"message": "successfully uploaded post",
	})
}

// UploadPostImage stores the image ahead of post creation and returns the
// URL the client should reference in createpost.
func (pc *PostController) UploadPostImage(c *gin.Context) {
	url, err := saveUploadedImage(c, pc.images, pc.baseURL, "postImage")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": url})
}

func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := pc.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUser(c)
	if err := pc.posts.Delete(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "post deleted successfully"})
}

func (pc *PostController) LikePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUser(c)
	if err := pc.posts.Like(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post liked"})
}

func (pc *PostController) GetFeed(c *gin.Context) {
	user := currentUser(c)
	feed, err := pc.feed.FeedFor(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if feed == nil {
		feed = []models.FeedPost{}
	}
	c.JSON(http.StatusOK, feed)
}

func (pc *PostController) GetUserPosts(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	posts, err := pc.feed.PostsBy(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(posts), "data": posts})
}

// GetImage streams a stored image back to the client.
func (pc *PostController) GetImage(c *gin.Context) {
	key := c.Param("image_id")

	reader, contentType, err := pc.images.Open(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "image not found"})
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
