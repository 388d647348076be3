package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

const defaultSuggestionCount = 5

type UserController struct {
	users   *services.UserService
	follows *services.FollowService
	images  ImageStorage
	baseURL string
}

func NewUserController(users *services.UserService, follows *services.FollowService, images ImageStorage, baseURL string) *UserController {
	return &UserController{users: users, follows: follows, images: images, baseURL: baseURL}
}

func (uc *UserController) GetUser(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (uc *UserController) GetUserById(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
	CoverImage   string `json:"coverImage"`
	OldPassword  string `json:"oldPassword"`
	NewPassword  string `json:"newPassword"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user := currentUser(c)
	updated, err := uc.users.UpdateProfile(c.Request.Context(), user.ID, services.ProfileUpdate{
		Name:         req.Name,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
		OldPassword:  req.OldPassword,
		NewPassword:  req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated successfully",
		"user": gin.H{
			"_id":          updated.ID,
			"name":         updated.Name,
			"bio":          updated.Bio,
			"profileImage": updated.ProfileImage,
			"coverImage":   updated.CoverImage,
		},
	})
}

// DeleteUser deletes the authenticated account. The token subject is the
// only identity honored here.
func (uc *UserController) DeleteUser(c *gin.Context) {
	user := currentUser(c)
	if err := uc.users.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted successfully"})
}

func (uc *UserController) FollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUser(c)
	if err := uc.follows.Follow(c.Request.Context(), user.ID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User followed"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUser(c)
	if err := uc.follows.Unfollow(c.Request.Context(), user.ID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed"})
}

func (uc *UserController) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "search query must be at least 2 characters"})
		return
	}

	results, err := uc.users.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (uc *UserController) GetSuggestions(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSuggestionCount)))
	if err != nil || count < 1 {
		count = defaultSuggestionCount
	}

	user := currentUser(c)
	suggestions, err := uc.follows.Suggest(c.Request.Context(), user.ID, count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(suggestions), "data": suggestions})
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	followers, err := uc.follows.Followers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(followers), "data": followers})
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	following, err := uc.follows.Following(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(following), "data": following})
}

func (uc *UserController) UploadProfilePic(c *gin.Context) {
	uc.uploadAndSet(c, "profilePic", true)
}

func (uc *UserController) UploadCoverPic(c *gin.Context) {
	uc.uploadAndSet(c, "coverPic", false)
}

func (uc *UserController) uploadAndSet(c *gin.Context, field string, profile bool) {
	url, err := saveUploadedImage(c, uc.images, uc.baseURL, field)
	if err != nil {
		respondError(c, err)
		return
	}

	upd := services.ProfileUpdate{}
	response := gin.H{"success": true}
	if profile {
		upd.ProfileImage = url
		response["profileImage"] = url
	} else {
		upd.CoverImage = url
		response["coverImage"] = url
	}

	user := currentUser(c)
	if _, err := uc.users.UpdateProfile(c.Request.Context(), user.ID, upd); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
