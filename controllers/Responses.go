package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
)

// ImageStorage is what the handlers need from the object store.
type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// respondError maps service errors to HTTP statuses. Every failure leaves
// the boundary as {success:false, message}.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrWrongPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotOwner):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) models.User {
	return c.MustGet("user").(models.User)
}

func pathID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// saveUploadedImage stores a multipart file under a fresh UUID key and
// returns the URL it will be served from.
func saveUploadedImage(c *gin.Context, images ImageStorage, baseURL, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", services.ErrValidation
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	if err := images.Upload(c.Request.Context(), key, src, fileHeader.Size, contentType); err != nil {
		return "", err
	}
	return baseURL + "/api/image/" + key, nil
}
