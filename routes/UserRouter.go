package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/controllers"
)

func UserRouter(incomingRoutes *gin.Engine, requireAuth gin.HandlerFunc, user *controllers.UserController) {
	group := incomingRoutes.Group("/api/user")
	group.Use(requireAuth)

	group.GET("/getuser", user.GetUser)
	group.PUT("/updateprofile", user.UpdateProfile)
	group.DELETE("/deleteuser", user.DeleteUser)
	group.PUT("/followuser/:id", user.FollowUser)
	group.PUT("/unfollowuser/:id", user.UnfollowUser)
	group.GET("/search", user.SearchUsers)
	group.GET("/suggestions", user.GetSuggestions)
	group.GET("/:id/followers", user.GetFollowers)
	group.GET("/:id/following", user.GetFollowing)
	group.POST("/uploadprofilepic", user.UploadProfilePic)
	group.POST("/uploadcoverpic", user.UploadCoverPic)
	group.GET("/:id", user.GetUserById)
}
