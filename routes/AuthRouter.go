package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/controllers"
)

func AuthRouter(incomingRoutes *gin.Engine, auth *controllers.AuthController) {
	group := incomingRoutes.Group("/api/auth")
	group.POST("/register", auth.Register)
	group.POST("/login", auth.Login)
}
