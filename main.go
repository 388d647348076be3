package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/cache"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/config"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/controllers"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/database"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/middlewares"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/routes"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/services"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/storage"
	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/stores"
)

func main() {
	cfg := config.Load()
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY is not set")
	}
	ctx := context.Background()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	feedCache := cache.NewFeedCache(rdb, cfg.FeedCacheTTL)

	images, err := storage.NewImageStorage(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("minio connect: %v", err)
	}

	userStore := stores.NewUserStore(database.OpenCollection(client, cfg.DBName, "users"))
	postStore := stores.NewPostStore(database.OpenCollection(client, cfg.DBName, "posts"))

	userService := services.NewUserService(userStore, postStore, feedCache, cfg.DefaultDp, cfg.DefaultCover)
	followService := services.NewFollowService(userStore, feedCache)
	feedService := services.NewFeedService(userStore, postStore, feedCache)
	postService := services.NewPostService(postStore, userStore, images, feedCache)

	authController := controllers.NewAuthController(userService, []byte(cfg.SecretKey), cfg.TokenTTL)
	userController := controllers.NewUserController(userService, followService, images, cfg.BaseURL)
	postController := controllers.NewPostController(postService, feedService, images, cfg.BaseURL)

	requireAuth := middlewares.RequireAuth(userService, []byte(cfg.SecretKey))

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "backend is running successfully"})
	})

	routes.AuthRouter(router, authController)
	routes.UserRouter(router, requireAuth, userController)
	routes.PostRouter(router, requireAuth, postController)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
