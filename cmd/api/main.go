package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/socialhub/socialhub/internal/config"
	"github.com/socialhub/socialhub/internal/handlers"
	"github.com/socialhub/socialhub/internal/middleware"
	"github.com/socialhub/socialhub/internal/repository"
	"github.com/socialhub/socialhub/internal/services"
	"github.com/socialhub/socialhub/pkg/cache"
	"github.com/socialhub/socialhub/pkg/logger"
	"github.com/socialhub/socialhub/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting social platform API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient = cache.NewRedisClient(
			cfg.Redis.Addr(),
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			cfg.Redis.MinIdleConns,
		)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()); err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
	}

	var producer *queue.KafkaProducer
	if cfg.Kafka.Enabled {
		producer = queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.ActivityEvents)
		defer producer.Close()
	}

	userRepo := repository.NewUserRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	likeRepo := repository.NewLikeRepository(db.DB)
	hashtagRepo := repository.NewHashtagRepository(db.DB)
	activityRepo := repository.NewActivityRepository(db.DB)

	userService := services.NewUserService(userRepo, producer, logger)
	followService := services.NewFollowService(db.DB, userRepo, followRepo, producer, logger)
	postService := services.NewPostService(db.DB, postRepo, likeRepo, hashtagRepo, producer, logger)
	likeService := services.NewLikeService(db.DB, postRepo, likeRepo, producer, logger)
	feedService := services.NewFeedService(postRepo, followRepo, likeRepo, hashtagRepo, redisClient, &cfg.Feed, logger)
	activityService := services.NewActivityService(userRepo, postRepo, likeRepo, followRepo, activityRepo, logger)

	userHandler := handlers.NewUserHandler(userService, &cfg.JWT)
	followHandler := handlers.NewFollowHandler(followService)
	postHandler := handlers.NewPostHandler(postService)
	likeHandler := handlers.NewLikeHandler(likeService)
	hashtagHandler := handlers.NewHashtagHandler(hashtagRepo)
	feedHandler := handlers.NewFeedHandler(feedService)
	activityHandler := handlers.NewActivityHandler(activityService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/followers", followHandler.GetFollowers)
			users.GET("/:id/following", followHandler.GetFollowing)
		}

		hashtags := api.Group("/hashtags")
		{
			hashtags.GET("", hashtagHandler.ListHashtags)
			hashtags.GET("/:id", hashtagHandler.GetHashtag)
			hashtags.GET("/name/:name", hashtagHandler.GetHashtagByName)
		}

		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.GET("/posts/hashtag/:tag", postHandler.GetPostsByHashtag)

		protected := api.Group("")
		protected.Use(middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
		{
			protected.PUT("/users/profile", userHandler.UpdateProfile)

			protected.POST("/follows", followHandler.Follow)
			protected.DELETE("/follows/:id", followHandler.Unfollow)

			protected.POST("/posts", postHandler.CreatePost)
			protected.PUT("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)

			protected.POST("/likes", likeHandler.LikePost)
			protected.DELETE("/likes/:id", likeHandler.UnlikePost)
			protected.GET("/likes", likeHandler.GetLikesByPost)

			protected.GET("/feed", feedHandler.GetFeed)
			protected.GET("/users/:id/activity", activityHandler.GetUserActivity)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "socialhub"
  password: "socialhub"
  dbname: "socialhub"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  enabled: false
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  enabled: false
  brokers:
    - "localhost:9092"
  topics:
    activity_events: "activity-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 24h

feed:
  default_page_size: 10
  max_page_size: 100
  cache_ttl: 30s`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
