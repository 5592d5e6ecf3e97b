package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Lloyd952/horror-haven/internal/bootstrap"
	"github.com/Lloyd952/horror-haven/internal/config"
	"github.com/Lloyd952/horror-haven/internal/handler"
	"github.com/Lloyd952/horror-haven/internal/middleware"
	"github.com/Lloyd952/horror-haven/internal/repository"
	"github.com/Lloyd952/horror-haven/internal/service"
	"github.com/Lloyd952/horror-haven/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		admin, err := bootstrap.SeedAdminUser(db)
		if err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
		if err := bootstrap.SeedSampleReviews(db, admin); err != nil {
			log.Fatalf("failed to seed sample reviews: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, comment rate limiting disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("MEILISEARCH_HOST not set, review search disabled")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	searchSvc := service.NewSearchService(meiliClient)

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	authHandler := handler.NewAuthHandler(authService)

	reviewService := service.NewReviewService(reviewRepo, commentRepo, searchSvc)
	reviewHandler := handler.NewReviewHandler(reviewService)

	commentService := service.NewCommentService(commentRepo, reviewRepo, userRepo, redisClient, cfg.RateLimitComment)
	commentHandler := handler.NewCommentHandler(commentService)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(sessionRepo, userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	api.GET("/reviews", reviewHandler.ListPublished)
	api.GET("/reviews/tag/:tag", reviewHandler.ListPublishedByTag)
	api.GET("/reviews/most-commented", reviewHandler.MostCommented)
	api.GET("/reviews/highest-rated", reviewHandler.HighestRated)
	api.GET("/reviews/search", reviewHandler.SearchReviews)
	api.GET("/reviews/:year/:month/:day/:slug", reviewHandler.GetReviewDetail)
	api.GET("/reviews/id/:id/comments", commentHandler.ListComments)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/reviews", reviewHandler.CreateReview)
		protected.PUT("/reviews/id/:id", reviewHandler.UpdateReview)
		protected.PUT("/reviews/id/:id/publish", reviewHandler.PublishReview)
		protected.PUT("/reviews/id/:id/unpublish", reviewHandler.UnpublishReview)
		protected.POST("/reviews/id/:id/comments", commentHandler.CreateComment)
		protected.PUT("/comments/:comment_id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		// Moderation routes
		staff := protected.Group("")
		staff.Use(authMiddleware.RequireStaff())
		{
			staff.PUT("/comments/:comment_id/deactivate", commentHandler.DeactivateComment)
		}
	}

	// Expired sessions pile up otherwise; sweep them in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := sessionRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
