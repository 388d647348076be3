package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/controllers"
)

func PostRouter(incomingRoutes *gin.Engine, requireAuth gin.HandlerFunc, post *controllers.PostController) {
	group := incomingRoutes.Group("/api/post")
	group.Use(requireAuth)

	group.POST("/createpost", post.CreatePost)
	group.POST("/uploadpostimage", post.UploadPostImage)
	group.GET("/getpost/:id", post.GetPost)
	group.DELETE("/deletepost/:id", post.DeletePost)
	group.PUT("/likepost/:id", post.LikePost)
	group.GET("/feed", post.GetFeed)
	group.GET("/user/:userId", post.GetUserPosts)

	// images are public so <img> tags can load them without a bearer header
	incomingRoutes.GET("/api/image/:image_id", post.GetImage)
}
